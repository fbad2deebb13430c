package htmloutput

// htmlTemplate is the embedded HTML template for the listing report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AWS Resource Listing{{if .AccountID}} - {{.AccountID}}{{end}}</title>
    <style>
        :root {
            --bg-primary: #0d1117;
            --bg-secondary: #161b22;
            --text-primary: #f0f6fc;
            --text-secondary: #8b949e;
            --border-color: #30363d;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            margin: 0;
            padding: 20px;
        }

        header h1 {
            margin: 0 0 6px 0;
        }

        .meta {
            color: var(--text-secondary);
            font-size: 0.9em;
            margin-bottom: 16px;
        }

        #search {
            width: 320px;
            padding: 6px 10px;
            margin-bottom: 16px;
            background: var(--bg-secondary);
            color: var(--text-primary);
            border: 1px solid var(--border-color);
            border-radius: 6px;
        }

        table {
            border-collapse: collapse;
        }

        th, td {
            border: 1px solid var(--border-color);
            padding: 4px;
            vertical-align: top;
            font-size: 0.85em;
        }

        th {
            background: var(--bg-secondary);
            position: sticky;
            top: 0;
        }

        th.service {
            text-align: left;
            left: 0;
        }

        .group button {
            width: 100%;
            border: none;
            border-radius: 4px;
            margin: 1px 0;
            padding: 2px 6px;
            text-align: left;
            cursor: pointer;
            color: #000;
        }

        .nfound button { background: orange; }
        .found button { background: lightgreen; }
        .denied button { background: blue; color: #fff; }
        .error button { background: red; color: #fff; }

        .nCollapse, .fCollapse, .dCollapse, .eCollapse {
            display: none;
            margin: 0;
            padding-left: 16px;
        }

        .open {
            display: block;
        }

        .detail {
            color: var(--text-secondary);
            word-break: break-all;
        }
    </style>
</head>
<body>
    <header>
        <h1>AWS Resource Listing</h1>
        <p class="meta">{{if .AccountID}}Account: <strong>{{.AccountID}}</strong> | {{end}}{{if .Profile}}Profile: {{.Profile}} | {{end}}Calls: {{.Total}} | Generated: {{.GeneratedAt}}</p>
    </header>

    <input id="search" type="text" placeholder="Filter entries..." oninput="filterEntries(this.value)">

    <table>
        <thead>
            <tr>
                <th class="service">Service</th>
                {{range .Regions}}<th>{{.}}</th>{{end}}
            </tr>
        </thead>
        <tbody>
            {{range .Rows}}
            <tr>
                <th class="service">{{.Service}}</th>
                {{range .Cells}}
                <td>
                    {{range .Groups}}
                    <div class="group {{.Class}}">
                        <button type="button" onclick="toggleGroup('{{.ID}}')">{{.Label}} [<span class="count">{{len .Entries}}</span>]</button>
                        <ul class="{{.Collapse}}" id="{{.ID}}">
                            {{range .Entries}}<li class="entry">{{.Operation}}{{if .Detail}} <span class="detail">{{.Detail}}</span>{{end}}</li>{{end}}
                        </ul>
                    </div>
                    {{end}}
                </td>
                {{end}}
            </tr>
            {{end}}
        </tbody>
    </table>

    <script>
        function toggleGroup(id) {
            document.getElementById(id).classList.toggle('open');
        }

        function filterEntries(text) {
            var needle = text.toLowerCase();
            document.querySelectorAll('.group').forEach(function (group) {
                var visible = 0;
                group.querySelectorAll('.entry').forEach(function (entry) {
                    var match = entry.textContent.toLowerCase().indexOf(needle) !== -1;
                    entry.style.display = match ? '' : 'none';
                    if (match) {
                        visible++;
                    }
                });
                group.querySelector('.count').textContent = visible;
                group.style.display = visible > 0 ? '' : 'none';
            });
        }
    </script>
</body>
</html>
`
