package view

const stylesheet = `
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  :root {
    --bg: #0c0a09; --surface: #1c1917; --surface-hover: #292524;
    --border: rgba(249,115,22,0.12); --border-strong: rgba(249,115,22,0.25);
    --text: #fafaf9; --text-dim: #a8a29e; --text-muted: #57534e;
    --orange: #f97316; --orange-light: #fb923c;
    --orange-dim: rgba(249,115,22,0.15); --orange-dimmer: rgba(249,115,22,0.06);
    --green: #22c55e; --red: #ef4444; --blue: #3b82f6;
  }
  body {
    font-family: -apple-system, 'SF Pro Display', 'Segoe UI', system-ui, sans-serif;
    background: var(--bg); color: var(--text);
    min-height: 100vh; padding: 40px 24px;
  }
  .container { max-width: 960px; margin: 0 auto; }
  h1 {
    font-size: 30px; font-weight: 800; letter-spacing: -0.5px; text-align: center;
    margin-bottom: 32px;
    background: linear-gradient(135deg, var(--orange-light) 0%, var(--orange) 100%);
    -webkit-background-clip: text; -webkit-text-fill-color: transparent;
  }
  h2 { font-size: 20px; font-weight: 700; }
  h3 { font-size: 16px; font-weight: 600; margin-bottom: 4px; }
  h4 { font-size: 14px; font-weight: 600; margin-bottom: 12px; }
  .muted { color: var(--text-dim); }
  .small { font-size: 12px; }
  .strong { font-weight: 600; }
  .row { display: flex; align-items: center; gap: 12px; }
  .between { justify-content: space-between; }

  /* Cards */
  .card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: 20px; padding: 24px; margin-bottom: 16px;
  }
  .stats-grid {
    display: grid; grid-template-columns: repeat(2, 1fr);
    gap: 16px; margin-bottom: 16px;
  }
  .stat-card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: 20px; padding: 24px;
    transition: border-color 0.2s, background 0.2s;
  }
  .stat-card:hover { border-color: var(--border-strong); background: var(--surface-hover); }
  .stat-card h2 { margin-bottom: 16px; }
  .stat-row {
    display: flex; justify-content: space-between; padding: 8px 0;
    border-bottom: 1px solid var(--border);
  }
  .stat-row:last-child { border-bottom: none; }
  .stat-label {
    font-size: 11px; font-weight: 600; letter-spacing: 1.5px; text-transform: uppercase;
    color: var(--text-muted);
  }
  .stat-value { font-weight: 700; font-variant-numeric: tabular-nums; }

  /* Dominance */
  .dominance-bar {
    height: 32px; border-radius: 16px; overflow: hidden;
    background: rgba(16,185,129,0.35); margin-top: 16px;
  }
  .dominance-fill { height: 100%; background: var(--orange); transition: width 0.5s; }
  .dominance-labels { display: flex; justify-content: space-between; margin-top: 12px; font-size: 13px; font-weight: 600; }

  /* Tabs */
  .tabs { display: flex; border-bottom: 1px solid var(--border); margin: -24px -24px 24px; }
  .tab {
    flex: 1; padding: 16px; background: none; border: none; cursor: pointer;
    color: var(--text-dim); font-size: 14px; border-bottom: 2px solid transparent;
  }
  .tab:hover { color: var(--text); }
  .tab.active { color: var(--orange); border-bottom-color: var(--orange); font-weight: 600; }

  /* Chart */
  .chart svg { width: 100%; height: 400px; }
  .chart .grid { stroke: var(--border-strong); stroke-dasharray: 3 3; }
  .chart .axis { fill: var(--text-dim); font-size: 12px; font-family: 'SF Mono', 'Menlo', monospace; }
  .legend { display: flex; justify-content: center; gap: 24px; margin-top: 8px; font-size: 13px; }
  .legend-item { display: flex; align-items: center; gap: 6px; }
  .swatch { width: 12px; height: 12px; border-radius: 3px; display: inline-block; }

  /* Holders */
  .holders { display: grid; grid-template-columns: repeat(2, 1fr); gap: 24px; }
  .holder {
    display: flex; justify-content: space-between; margin-bottom: 8px;
    padding: 12px; background: var(--orange-dimmer); border-radius: 12px;
    font-family: 'SF Mono', 'Menlo', monospace; font-size: 13px;
  }

  /* Voting */
  .voting h2 { margin-bottom: 0; }
  .banner { display: flex; align-items: center; gap: 8px; padding: 16px; border-radius: 12px; margin: 24px 0; }
  .banner-info { background: rgba(59,130,246,0.08); border: 1px solid rgba(59,130,246,0.25); color: #93c5fd; }
  .banner-success { background: rgba(34,197,94,0.08); border: 1px solid rgba(34,197,94,0.25); color: #86efac; }
  .charity { padding: 16px; border: 1px solid var(--border); border-radius: 12px; margin-bottom: 16px; }
  .charity:hover { border-color: var(--border-strong); }
  .charity .row.small { margin-top: 12px; }
  .tag {
    display: inline-block; margin-top: 6px; font-size: 10px; font-weight: 600; padding: 3px 10px;
    border-radius: 20px; background: var(--orange-dim); color: var(--orange); letter-spacing: 0.5px;
  }
  .thumb { width: 96px; height: 96px; border-radius: 12px; object-fit: cover; }
  .bar { height: 8px; border-radius: 4px; background: var(--surface-hover); overflow: hidden; margin-top: 8px; }
  .bar-fill { height: 100%; background: var(--blue); transition: width 0.3s; }
  .period { margin-top: 24px; padding: 16px; background: var(--surface-hover); border-radius: 12px; }
  .grid-2 { display: grid; grid-template-columns: repeat(2, 1fr); gap: 16px; }
  .icon { width: 20px; height: 20px; flex-shrink: 0; }

  /* Buttons */
  .btn {
    display: inline-flex; align-items: center; justify-content: center; gap: 8px;
    padding: 8px 16px; border-radius: 12px; border: none; cursor: pointer;
    background: var(--surface-hover); color: var(--text-muted); font-size: 14px;
  }
  .btn-primary { background: var(--orange); color: #000; font-weight: 600; }
  .btn-primary:hover { opacity: 0.9; }
  .btn-block { width: 100%; margin-top: 16px; }
  .btn:disabled { cursor: not-allowed; }

  /* Loading / error */
  .center { min-height: 60vh; display: flex; align-items: center; justify-content: center; text-align: center; }
  .spinner {
    width: 48px; height: 48px; margin: 0 auto; border-radius: 50%;
    border: 4px solid var(--orange); border-top-color: transparent;
    animation: spin 1s linear infinite;
  }
  @keyframes spin { to { transform: rotate(360deg); } }
  .center p { margin-top: 16px; color: var(--text-dim); }
  .error-card { max-width: 420px; width: 100%; }
  .error-title { color: var(--red); font-size: 20px; margin-bottom: 16px; }
  .empty { color: var(--text-muted); text-align: center; padding: 32px 0; }

  @media (max-width: 640px) {
    .stats-grid, .holders, .grid-2 { grid-template-columns: 1fr; }
    body { padding: 24px 16px; }
    h1 { font-size: 22px; }
  }
`

const script = `
const $ = id => document.getElementById(id);

async function fetchText(url) {
  const res = await fetch(url);
  return await res.text();
}

async function loadDashboard() {
  const app = $('app');
  const src = app.dataset.src;
  if (!src) return;
  try {
    app.innerHTML = await fetchText(src);
  } catch {
    app.innerHTML = '<div class="center" data-branch="error"><div class="card error-card">' +
      '<div class="error-title">Error</div><p>Failed to fetch dashboard data</p>' +
      '<button class="btn btn-primary" onclick="window.location.reload()">Retry</button></div></div>';
  }
}

function selectTab(tab) {
  document.querySelectorAll('[data-tab]').forEach(b => b.classList.toggle('active', b.dataset.tab === tab));
  document.querySelectorAll('[data-panel]').forEach(p => { p.hidden = p.dataset.panel !== tab; });
}

async function refreshVoting() {
  const panel = $('voting-panel');
  if (!panel) return;
  try {
    panel.outerHTML = await fetchText('/fragments/voting');
  } catch {}
}

async function post(url, button) {
  button.disabled = true;
  try {
    const res = await fetch(url, { method: 'POST' });
    if (!res.ok) {
      const body = await res.json().catch(() => ({}));
      if (body.notice) alert(body.notice);
    }
  } catch (e) {
    console.error(e);
  }
  await refreshVoting();
}

document.addEventListener('click', e => {
  const tab = e.target.closest('[data-tab]');
  if (tab) { selectTab(tab.dataset.tab); return; }
  const action = e.target.closest('[data-action]');
  if (!action || action.disabled) return;
  if (action.dataset.action === 'connect') post('/api/wallet/connect', action);
  if (action.dataset.action === 'vote') post('/api/votes/' + action.dataset.charity, action);
});

loadDashboard();
`
