package server

const uiIndexCSS = `
    h1 { margin: 0 0 4px; font-size: 28px; }
    h2 { margin: 0 0 12px; font-size: 18px; }
    p { margin: 0 0 10px; color: var(--muted); }
    input, select, textarea {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 9px 12px;
      font-size: 14px;
      font-family: inherit;
    }
    textarea { width: 100%; min-height: 160px; font-family: ui-monospace, Menlo, Consolas, monospace; }
    .row { display: flex; gap: 8px; flex-wrap: wrap; align-items: center; }
    .header { display: flex; justify-content: space-between; align-items: center; gap: 12px; flex-wrap: wrap; }
    .tabs { display: flex; gap: 6px; }
    .tabs button.active { background: var(--accent); color: #fff; }
    #search { width: 320px; max-width: 100%; }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 12px; }
    .script-card { border: 1px solid var(--line); border-radius: 10px; overflow: hidden; cursor: pointer; background: #fff; display: flex; flex-direction: column; }
    .script-card:hover { box-shadow: 0 6px 18px rgba(69,83,184,.15); }
    .script-card img { width: 100%; aspect-ratio: 4 / 3; object-fit: cover; display: block; background: var(--bg2); }
    .script-card .meta { padding: 8px 10px; display: flex; justify-content: space-between; gap: 8px; align-items: center; }
    .script-card .name { font-weight: 600; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
    .pill { font-size: 12px; padding: 2px 8px; border-radius: 999px; background: #eceefa; color: var(--accent); }
    .slots { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin: 10px 0; }
    .slot { border: 1px dashed var(--line); border-radius: 8px; min-height: 120px; display: flex; align-items: center; justify-content: center; color: var(--muted); font-size: 13px; text-align: center; padding: 8px; }
    .slot.active { border-style: solid; border-color: var(--accent); color: var(--ink); }
    .progress { height: 6px; background: var(--bg2); border-radius: 999px; overflow: hidden; }
    .progress > div { height: 100%; width: 0; background: var(--accent); transition: width .2s linear; }
    pre.code { background: #151829; color: #e4e7fb; padding: 12px; border-radius: 8px; white-space: pre-wrap; word-break: break-word; max-height: 50vh; overflow: auto; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th, td { border-bottom: 1px solid var(--line); text-align: left; padding: 8px 6px; vertical-align: top; overflow-wrap: anywhere; }
    .hidden { display: none !important; }
    @media (max-width: 640px) { .slots { grid-template-columns: 1fr; } }
`
