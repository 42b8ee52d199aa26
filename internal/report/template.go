package report

// htmlTemplate is the standalone HTML summary: the chart inline followed
// by the table.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --green: #16a34a;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 1240px;
    margin: 0 auto;
    padding: 24px;
  }
  h1 { font-size: 1.6rem; margin-bottom: 4px; }
  .muted { color: var(--muted); font-size: 0.9rem; }
  .chart { margin: 24px 0; overflow-x: auto; }
  table { border-collapse: collapse; width: 100%; font-variant-numeric: tabular-nums; }
  th, td { border: 1px solid var(--border); padding: 6px 10px; text-align: right; }
  th { background: var(--section-bg); }
  td:first-child, th:first-child { text-align: left; }
  .pos { color: var(--green); }
  .neg { color: var(--red); }
  .nan { color: var(--muted); }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="muted">Generated {{.GeneratedAt}}{{if .RunID}} · run {{.RunID}}{{end}}</p>
</header>
<section class="chart">{{.Chart}}</section>
<section>
  <table>
    <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- range .Rows}}
      <tr>{{range $i, $c := .}}{{if eq $i 0}}<td>{{$c}}</td>{{else}}<td class="{{cellClass $c}}">{{$c}}</td>{{end}}{{end}}</tr>
    {{- end}}
    </tbody>
  </table>
</section>
</body>
</html>
`
