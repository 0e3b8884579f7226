package session

import "time"

// Tap disambiguates single and double activation of a control. The
// first tap arms a short window; a second tap inside it fires double
// and cancels the pending single. Otherwise single fires when the
// window elapses. Each control id debounces independently.
// TapWindow reports how long a tap stays open for a second one.
func (s *Session) TapWindow() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tapWindow
}

func (s *Session) Tap(controlID string, single, double func()) {
	s.mu.Lock()
	if pending, ok := s.taps[controlID]; ok {
		delete(s.taps, controlID)
		s.mu.Unlock()
		pending.Stop()
		if double != nil {
			double()
		}
		return
	}
	s.taps[controlID] = time.AfterFunc(s.tapWindow, func() {
		s.mu.Lock()
		delete(s.taps, controlID)
		s.mu.Unlock()
		if single != nil {
			single()
		}
	})
	s.mu.Unlock()
}
