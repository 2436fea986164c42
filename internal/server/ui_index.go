package server

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>scriptgate</title>
  <link rel="icon" type="image/svg+xml" href="/favicon.ico" />
  <style>
` + uiPageChromeCSS + uiIndexCSS + `
  </style>
</head>
<body>
  <main>
    <div class="card">
      <div class="header">
        <div>
          <h1>scriptgate</h1>
          <p>Pick a script to reveal its code</p>
        </div>
        <div class="tabs" role="tablist">
          <button type="button" data-tab="scripts" class="active">Scripts</button>
          <button type="button" data-tab="executors">Executors</button>
          <button type="button" data-tab="developer">Developer</button>
        </div>
      </div>
    </div>

    <section id="tab-scripts" class="card">
      <div class="row" style="justify-content:space-between;margin-bottom:12px;">
        <input id="search" type="search" placeholder="Search by name, id, link or code" autocomplete="off" />
        <span class="muted">Showing <span id="countDisplay">0 / 0</span></span>
      </div>
      <div id="grid" class="grid"></div>
      <p id="emptyState" class="muted hidden">No scripts match your search.</p>
    </section>

    <section id="tab-executors" class="card hidden">
      <h2>Executors</h2>
      <form id="executorForm" class="row" style="margin-bottom:12px;">
        <input name="name" placeholder="Name" required />
        <input name="url" placeholder="Download URL (optional)" />
        <input name="file" type="file" />
        <button type="submit">Add executor</button>
      </form>
      <table>
        <thead><tr><th>Name</th><th>Location</th><th>Size</th><th></th></tr></thead>
        <tbody id="executorRows"></tbody>
      </table>
    </section>

    <section id="tab-developer" class="card hidden">
      <h2>Developer</h2>
      <p>Paste a JSON array to replace the catalog, an object with a <code>scripts</code> array to replace from an object, or a single script object to append it.</p>
      <textarea id="devJSON" spellcheck="false"></textarea>
      <div class="row" style="margin:10px 0;">
        <button type="button" id="devApply">Apply JSON</button>
        <button type="button" id="devReset" class="danger">Reset local edits</button>
      </div>
      <h2>Placeholders</h2>
      <div class="row">
        <label>Slot A <input id="setPlaceholderA" /></label>
        <label>Slot B <input id="setPlaceholderB" /></label>
        <label>Provider <input id="setProvider" /></label>
        <label>Delay <select id="setDelay"></select></label>
        <button type="button" id="saveSettings">Save</button>
      </div>
    </section>
  </main>

  <div id="revealOverlay" class="sg-modal-overlay" aria-hidden="true">
    <div class="sg-modal" role="dialog" aria-modal="true" aria-labelledby="revealTitle">
      <div class="sg-modal-head">
        <div>
          <div class="sg-modal-title" id="revealTitle"></div>
          <div class="muted" id="revealName"></div>
        </div>
        <button type="button" id="revealClose" aria-label="Close">Close</button>
      </div>
      <div class="sg-modal-body">
        <div class="progress"><div id="revealProgress"></div></div>
        <div class="slots">
          <div class="slot" id="slot1"></div>
          <div class="slot" id="slot2"></div>
        </div>
        <div id="revealCodeBlock" class="hidden">
          <pre class="code" id="revealCode"></pre>
          <div class="row">
            <button type="button" id="revealCopy">Copy</button>
            <a id="revealLink" target="_blank" rel="noopener">Open link</a>
            <span class="muted" id="revealNotice"></span>
          </div>
        </div>
      </div>
    </div>
  </div>

  <script src="/ui/shared.js"></script>
  <script src="/ui/app.js"></script>
</body>
</html>`
