package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Single-page dashboard. Served inline so the binary stays self-contained;
// charts are drawn client-side with Chart.js.
// -----------------------------------------------------------------------------

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
  header { background: #2d3436; color: #fff; padding: 12px 24px; }
  header h1 { font-size: 18px; margin: 0; }
  .controls { display: flex; flex-wrap: wrap; gap: 12px; padding: 16px 24px; background: #fff; border-bottom: 1px solid #dfe6e9; align-items: end; }
  .controls label { display: block; font-size: 11px; text-transform: uppercase; color: #636e72; margin-bottom: 4px; }
  .controls input, .controls select { padding: 6px 8px; border: 1px solid #b2bec3; border-radius: 4px; font-size: 13px; }
  .controls button { padding: 8px 18px; background: #0984e3; border: 0; border-radius: 4px; color: #fff; font-size: 13px; cursor: pointer; }
  .kpis { display: flex; gap: 16px; padding: 16px 24px; flex-wrap: wrap; }
  .kpi { background: #fff; border: 1px solid #dfe6e9; border-radius: 6px; padding: 12px 20px; min-width: 150px; }
  .kpi .label { font-size: 11px; text-transform: uppercase; color: #636e72; }
  .kpi .value { font-size: 20px; font-weight: 600; margin-top: 4px; }
  .grid { display: grid; grid-template-columns: 2fr 1fr; gap: 16px; padding: 0 24px 24px; }
  .panel { background: #fff; border: 1px solid #dfe6e9; border-radius: 6px; padding: 16px; }
  .panel h2 { font-size: 14px; margin: 0 0 12px; }
  .panel.wide { grid-column: 1 / -1; }
  table { border-collapse: collapse; width: 100%; font-size: 12px; }
  th, td { border-bottom: 1px solid #dfe6e9; padding: 5px 8px; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  #error { display: none; margin: 16px 24px; padding: 12px 16px; background: #ffeaa7; border-radius: 6px; }
  #download { font-size: 13px; }
</style>
</head>
<body>
<header><h1>&#128200; {{.Name}}</h1></header>

<div class="controls">
  <div><label>Ticker</label><input id="symbol" value="{{.DefaultSymbol}}" size="8"></div>
  <div><label>Start date</label><input id="start" type="date"></div>
  <div><label>End date</label><input id="end" type="date"></div>
  <div><label>Frequency</label>
    <select id="interval">
      <option value="1d">Daily</option>
      <option value="1wk">Weekly</option>
      <option value="1mo">Monthly</option>
    </select>
  </div>
  <div><label>Short MA</label><input id="ma_short" type="number" min="{{.MAShortMin}}" max="{{.MAShortMax}}" value="{{.MAShortDefault}}"></div>
  <div><label>Long MA</label><input id="ma_long" type="number" min="{{.MALongMin}}" max="{{.MALongMax}}" value="{{.MALongDefault}}"></div>
  <div><label>Price type</label>
    <select id="price">
      <option value="adjclose">Adj Close</option>
      <option value="close">Close</option>
      <option value="open">Open</option>
    </select>
  </div>
  <button onclick="refresh()">Update</button>
  <a id="download" href="#">Download CSV</a>
</div>

<div id="error"></div>

<div class="kpis">
  <div class="kpi"><div class="label">Last Close</div><div class="value" id="kpi-close">–</div></div>
  <div class="kpi"><div class="label">Daily Change</div><div class="value" id="kpi-change">–</div></div>
  <div class="kpi"><div class="label">Annualized Volatility</div><div class="value" id="kpi-vol">–</div></div>
  <div class="kpi"><div class="label">Average Volume</div><div class="value" id="kpi-volume">–</div></div>
</div>

<div class="grid">
  <div class="panel wide"><h2>Price &amp; Moving Averages</h2><canvas id="priceChart" height="90"></canvas></div>
  <div class="panel"><h2>Daily Returns</h2><canvas id="returnsChart" height="160"></canvas></div>
  <div class="panel"><h2>Summary Statistics (Returns)</h2>
    <table id="statsTable"><tbody></tbody></table>
  </div>
  <div class="panel wide"><h2>Return Distribution</h2><canvas id="histChart" height="70"></canvas></div>
  <div class="panel wide"><h2>Raw Price Data</h2>
    <div style="max-height:320px;overflow:auto">
      <table id="dataTable">
        <thead><tr><th>Date</th><th>Open</th><th>High</th><th>Low</th><th>Close</th><th>Adj Close</th><th>Volume</th></tr></thead>
        <tbody></tbody>
      </table>
    </div>
  </div>
</div>

<script>
let charts = {};

function queryString() {
  const params = new URLSearchParams();
  for (const id of ["symbol", "start", "end", "interval", "ma_short", "ma_long", "price"]) {
    const v = document.getElementById(id).value;
    if (v) params.set(id, v);
  }
  return params.toString();
}

function fmtDate(ts) {
  return new Date(ts * 1000).toISOString().slice(0, 10);
}

function lineChart(id, labels, datasets) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: "line",
    data: { labels: labels, datasets: datasets },
    options: { animation: false, pointStyle: false, plugins: { legend: { display: datasets.length > 1 } } }
  });
}

async function refresh() {
  const qs = queryString();
  document.getElementById("download").href = "/api/export?" + qs;
  const errBox = document.getElementById("error");
  errBox.style.display = "none";

  const resp = await fetch("/api/dashboard?" + qs);
  const body = await resp.json();
  if (!resp.ok) {
    errBox.textContent = body.error || "request failed";
    errBox.style.display = "block";
    return;
  }

  const labels = body.candles.map(c => fmtDate(c.timestamp));
  const o = body.overview;
  document.getElementById("kpi-close").textContent = "$" + o.last_close.toFixed(2);
  document.getElementById("kpi-change").textContent = o.daily_change_pct.toFixed(2) + "%";
  document.getElementById("kpi-vol").textContent = (o.annualized_vol * 100).toFixed(2) + "%";
  document.getElementById("kpi-volume").textContent = Math.round(o.avg_volume).toLocaleString();

  const priceSets = [{ label: body.query.price_field, data: body.candles.map(c => c[body.query.price_field === "adjclose" ? "adj_close" : body.query.price_field]), borderColor: "#0984e3" }];
  const colors = ["#e17055", "#00b894"];
  body.moving_averages.forEach((ma, i) => {
    priceSets.push({ label: "MA " + ma.window, data: ma.values, borderColor: colors[i % 2] });
  });
  lineChart("priceChart", labels, priceSets);

  lineChart("returnsChart", body.returns.map(r => fmtDate(r.timestamp)),
    [{ label: "Return", data: body.returns.map(r => r.value), borderColor: "#6c5ce7" }]);

  if (charts.histChart) charts.histChart.destroy();
  charts.histChart = new Chart(document.getElementById("histChart"), {
    type: "bar",
    data: {
      labels: body.histogram.map(b => ((b.start + b.end) / 2 * 100).toFixed(2) + "%"),
      datasets: [{ label: "Count", data: body.histogram.map(b => b.count), backgroundColor: "#0984e3" }]
    },
    options: { animation: false, plugins: { legend: { display: false } } }
  });

  const st = body.stats;
  document.querySelector("#statsTable tbody").innerHTML =
    "<tr><td>count</td><td>" + st.count + "</td></tr>" +
    "<tr><td>mean</td><td>" + st.mean.toExponential(4) + "</td></tr>" +
    "<tr><td>std</td><td>" + st.std.toExponential(4) + "</td></tr>" +
    "<tr><td>min</td><td>" + st.min.toExponential(4) + "</td></tr>" +
    "<tr><td>max</td><td>" + st.max.toExponential(4) + "</td></tr>";

  document.querySelector("#dataTable tbody").innerHTML = body.candles.map(c =>
    "<tr><td>" + fmtDate(c.timestamp) + "</td><td>" + c.open.toFixed(2) + "</td><td>" + c.high.toFixed(2) +
    "</td><td>" + c.low.toFixed(2) + "</td><td>" + c.close.toFixed(2) + "</td><td>" + c.adj_close.toFixed(2) +
    "</td><td>" + c.volume.toLocaleString() + "</td></tr>").join("");
}

window.addEventListener("load", () => {
  const end = new Date();
  const start = new Date();
  start.setFullYear(end.getFullYear() - 1);
  document.getElementById("end").value = end.toISOString().slice(0, 10);
  document.getElementById("start").value = start.toISOString().slice(0, 10);
  refresh();
});
</script>
</body>
</html>
`))

// -----------------------------------------------------------------------------

func (s *DashboardServer) getIndex(c *gin.Context) {
	d := s.Config.Dashboard

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	err := indexTemplate.Execute(c.Writer, gin.H{
		"Name":           s.Config.Name,
		"DefaultSymbol":  d.DefaultSymbol,
		"MAShortDefault": d.MAShortDefault,
		"MAShortMin":     d.MAShortMin,
		"MAShortMax":     d.MAShortMax,
		"MALongDefault":  d.MALongDefault,
		"MALongMin":      d.MALongMin,
		"MALongMax":      d.MALongMax,
	})
	if err != nil {
		s.Logger.Error("Failed to render dashboard page: %v", err)
	}
}
