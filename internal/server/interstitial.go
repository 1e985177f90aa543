package server

// interstitialDue counts successful round commits per session and reports
// whether this commit should surface an interstitial hint. The counter is
// session-scoped and unpersisted; it restarts with the process and has no
// bearing on score correctness.
func (s *Server) interstitialDue(sessionID string) bool {
	if !s.cfg.AdsEnabled || s.cfg.InterstitialEvery <= 0 {
		return false
	}
	s.commitsMu.Lock()
	defer s.commitsMu.Unlock()
	s.commits[sessionID]++
	return s.commits[sessionID]%s.cfg.InterstitialEvery == 0
}

func (s *Server) forgetCommits(sessionID string) {
	s.commitsMu.Lock()
	defer s.commitsMu.Unlock()
	delete(s.commits, sessionID)
}
