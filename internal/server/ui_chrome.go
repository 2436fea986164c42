package server

const uiPageChromeCSS = `
    :root {
      --bg: #f3f4f9;
      --bg2: #dfe3f5;
      --card: #ffffff;
      --ink: #1d2133;
      --muted: #626a85;
      --ok: #1f8a4c;
      --bad: #b23a48;
      --accent: #4553b8;
      --line: #d3d7ea;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Avenir Next", "Segoe UI", sans-serif;
      color: var(--ink);
      background: radial-gradient(circle at 20% 0%, var(--bg2), var(--bg));
    }
    main { max-width: 1100px; margin: 24px auto; padding: 0 16px; }
    .card {
      background: var(--card);
      border: 1px solid var(--line);
      border-radius: 12px;
      padding: 16px;
      margin-bottom: 16px;
      box-shadow: 0 8px 24px rgba(69,83,184,.08);
    }
    .muted { color: var(--muted); font-size: 13px; }
    .sg-modal-overlay { display: none; }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    button {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 8px 10px;
      font-size: 14px;
      line-height: 1.1;
      background: #ffffff;
      color: var(--accent);
      cursor: pointer;
    }
    button:hover:not(:disabled) { background: #f4f5fc; }
    button:disabled { opacity: 0.65; cursor: default; }
    button.danger { color: var(--bad); }
`
