package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Scoreboard renders the live session page. All scoring state comes from
// the snapshot pushed over the websocket; the page only keeps the
// uncommitted entry buffer in local state, mirroring the server-side
// shaping rules, and discards it on navigation.
func Scoreboard(sessionID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, layoutTop("Session · Tablescore")+`
      <section class="panel">
        <h1 id="gameTitle"></h1>
        <p id="roundLabel" class="tag"></p>
        <table class="scoreboard">
          <thead id="boardHead"></thead>
          <tbody id="boardBody"></tbody>
        </table>
        <div class="actions">
          <button id="endRound" class="primary">End round</button>
          <button id="undoRound" class="secondary">Undo last round</button>
          <button id="resetRounds" class="danger">Reset</button>
        </div>
        <div id="boardResult" class="result"></div>
      </section>

      <div id="confirmReset" class="modal" hidden>
        <div class="modal-card">
          <p>Delete every committed round? This cannot be undone.</p>
          <button id="confirmResetYes" class="danger">Reset all rounds</button>
          <button id="confirmResetNo" class="secondary">Keep rounds</button>
        </div>
      </div>

    <script>
      const sessionID = ` + jsString(sessionID) + `;
      let snapshot = null;
      let buffer = {};

      const title = document.getElementById("gameTitle");
      const roundLabel = document.getElementById("roundLabel");
      const head = document.getElementById("boardHead");
      const body = document.getElementById("boardBody");
      const boardResult = document.getElementById("boardResult");

      function crownMode() {
        return snapshot.settings.calculation_mode === "no-points";
      }
      function multiMode() {
        return snapshot.settings.points_per_round === "multiple";
      }

      function entryCell(row) {
        const entry = buffer[row.key] || {};
        if (crownMode()) {
          const set = entry.crown ? " active" : "";
          return '<button class="crown' + set + '" data-key="' + row.key + '">\u{1F3C6}</button>';
        }
        const values = entry.values || [0];
        let cell = values.map((v, i) =>
          '<input type="number" min="0" value="' + v + '" data-key="' + row.key + '" data-index="' + i + '"/>'
        ).join("");
        if (multiMode()) {
          cell += '<button class="sub" data-add="' + row.key + '">+</button>';
          if (values.length > 1) {
            cell += '<button class="sub" data-remove="' + row.key + '">−</button>';
          }
        }
        return cell;
      }

      function renderBoard() {
        title.textContent = snapshot.game;
        roundLabel.textContent = "Round " + snapshot.next_round_number;
        const showTotal = !snapshot.settings.hide_total_column;
        let headRow = "<tr><th></th><th>This round</th>";
        if (showTotal) headRow += "<th>Total</th>";
        for (const n of snapshot.round_columns) headRow += "<th>R" + n + "</th>";
        head.innerHTML = headRow + "</tr>";
        body.innerHTML = snapshot.rows.map((row) => {
          let tr = "<tr><td>" + row.name + "</td><td>" + entryCell(row) + "</td>";
          if (showTotal) tr += "<td>" + row.total + "</td>";
          for (const cell of row.rounds) tr += "<td>" + cell + "</td>";
          return tr + "</tr>";
        }).join("");
      }

      body.addEventListener("click", (e) => {
        const key = e.target.dataset.key;
        if (e.target.classList.contains("crown") && key) {
          const wasSet = buffer[key] && buffer[key].crown;
          // One crown per round in individual play.
          if (snapshot.settings.gameplay !== "team") {
            for (const k of Object.keys(buffer)) buffer[k].crown = false;
          }
          buffer[key] = buffer[key] || {};
          buffer[key].crown = !wasSet;
          renderBoard();
        } else if (e.target.dataset.add) {
          const k = e.target.dataset.add;
          buffer[k] = buffer[k] || { values: [0] };
          buffer[k].values.push(0);
          renderBoard();
        } else if (e.target.dataset.remove) {
          const k = e.target.dataset.remove;
          if (buffer[k] && buffer[k].values.length > 1) buffer[k].values.pop();
          renderBoard();
        }
      });

      body.addEventListener("input", (e) => {
        const key = e.target.dataset.key;
        if (key === undefined) return;
        const index = Number(e.target.dataset.index || 0);
        buffer[key] = buffer[key] || { values: [0] };
        while (buffer[key].values.length <= index) buffer[key].values.push(0);
        buffer[key].values[index] = Math.max(0, Number(e.target.value) || 0);
      });

      document.getElementById("endRound").addEventListener("click", async () => {
        const entries = {};
        for (const [key, entry] of Object.entries(buffer)) {
          if (crownMode()) entries[key] = { crown: !!entry.crown };
          else if (multiMode()) entries[key] = { values: entry.values || [0] };
          else entries[key] = { value: (entry.values || [0])[0] };
        }
        const res = await fetch("/api/sessions/" + sessionID + "/rounds", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ entries }),
        });
        const payload = await res.json();
        if (!res.ok) {
          // Keep the buffer so nothing typed is lost.
          boardResult.textContent = payload.error || "Could not end the round.";
          return;
        }
        buffer = {};
        boardResult.textContent = "";
        if (payload.show_interstitial) {
          boardResult.textContent = "Ad break!";
        }
      });

      document.getElementById("undoRound").addEventListener("click", async () => {
        const res = await fetch("/api/sessions/" + sessionID + "/rounds/last", { method: "DELETE" });
        if (!res.ok) boardResult.textContent = "Could not undo the round.";
      });

      const confirmBox = document.getElementById("confirmReset");
      document.getElementById("resetRounds").addEventListener("click", () => {
        confirmBox.hidden = false;
      });
      document.getElementById("confirmResetNo").addEventListener("click", () => {
        confirmBox.hidden = true;
      });
      document.getElementById("confirmResetYes").addEventListener("click", async () => {
        confirmBox.hidden = true;
        const res = await fetch("/api/sessions/" + sessionID + "/rounds", { method: "DELETE" });
        if (!res.ok) boardResult.textContent = "Could not reset the session.";
      });

      const proto = location.protocol === "https:" ? "wss" : "ws";
      const sock = new WebSocket(proto + "://" + location.host + "/ws/sessions/" + sessionID);
      sock.addEventListener("message", (e) => {
        snapshot = JSON.parse(e.data);
        renderBoard();
      });
    </script>
`+layoutBottom)
		return err
	})
}
