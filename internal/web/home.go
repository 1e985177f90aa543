package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, layoutTop("Tablescore")+`
      <header class="hero">
        <span class="tag">Tablescore</span>
        <h1>Keep score. Settle arguments.</h1>
        <p>Pick a game, pick your players, and start counting rounds.</p>
      </header>

      <section class="panel">
        <h2>New session</h2>
        <form id="sessionForm" class="session-form">
          <label>Game
            <select id="gameSelect" name="game"></select>
          </label>
          <label>Players
            <div id="playerChecks" class="player-checks"></div>
          </label>
          <label>Mode
            <select name="gameplay">
              <option value="individual">Individual</option>
              <option value="team">Red vs. Blue</option>
            </select>
          </label>
          <label>Scoring
            <select name="calculation_mode">
              <option value="points">Points</option>
              <option value="penalized">Penalties (lowest wins)</option>
              <option value="no-points">Crown (one winner per round)</option>
            </select>
          </label>
          <label>Scores per round
            <select name="points_per_round">
              <option value="single">One</option>
              <option value="multiple">Several</option>
            </select>
          </label>
          <button type="submit" class="primary">Start session</button>
        </form>
        <div id="sessionResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Add a player</h2>
        <form id="playerForm" class="join-form">
          <input name="name" placeholder="Player name" autocomplete="off" required/>
          <input name="emoji" placeholder="Emoji" size="4"/>
          <button type="submit" class="secondary">Add player</button>
        </form>
        <div id="playerResult" class="result"></div>
      </section>

    <script>
      const form = document.getElementById("sessionForm");
      const result = document.getElementById("sessionResult");
      const gameSelect = document.getElementById("gameSelect");
      const playerChecks = document.getElementById("playerChecks");
      const playerForm = document.getElementById("playerForm");
      const playerResult = document.getElementById("playerResult");

      async function loadOptions() {
        const [gamesRes, playersRes] = await Promise.all([
          fetch("/api/games"), fetch("/api/players"),
        ]);
        const games = (await gamesRes.json()).games || [];
        const players = (await playersRes.json()).players || [];
        gameSelect.innerHTML = games.map(
          (g) => '<option value="' + g.id + '">' + g.name + "</option>"
        ).join("");
        playerChecks.innerHTML = players.map(
          (p) => '<label><input type="checkbox" name="player" value="' + p.id + '"/>' +
            (p.emoji ? p.emoji + " " : "") + p.name + "</label>"
        ).join("");
      }
      loadOptions();

      playerForm.addEventListener("submit", async (e) => {
        e.preventDefault();
        const data = new FormData(playerForm);
        const res = await fetch("/api/players", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name: data.get("name"), emoji: data.get("emoji") }),
        });
        const body = await res.json();
        if (!res.ok) {
          playerResult.textContent = body.error || "Could not add player.";
          return;
        }
        playerResult.textContent = "Added " + body.name + ".";
        playerForm.reset();
        loadOptions();
      });

      form.addEventListener("submit", async (e) => {
        e.preventDefault();
        const data = new FormData(form);
        const picked = Array.from(
          playerChecks.querySelectorAll("input:checked")
        ).map((el) => Number(el.value));
        const payload = {
          game_id: Number(data.get("game")) || null,
          settings: {
            gameplay: data.get("gameplay"),
            calculation_mode: data.get("calculation_mode"),
            points_per_round: data.get("points_per_round"),
          },
        };
        if (data.get("gameplay") === "team") {
          const half = Math.ceil(picked.length / 2);
          payload.red_team = picked.slice(0, half);
          payload.blue_team = picked.slice(half);
        } else {
          payload.players = picked;
        }
        const res = await fetch("/api/sessions", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(payload),
        });
        const body = await res.json();
        if (!res.ok) {
          result.textContent = body.error || "Could not start session.";
          return;
        }
        window.location.href = "/sessions/" + body.session_id;
      });
    </script>
`+layoutBottom)
		return err
	})
}
