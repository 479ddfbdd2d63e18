package sessions

import "time"

// Session is the per-visitor state: an optional signed-in user plus one-shot
// flash messages shown on the next rendered page.
type Session struct {
	ID          string    `bson:"_id" json:"id"`
	CurrentUser string    `bson:"currentUser,omitempty" json:"currentUser,omitempty"`
	Success     string    `bson:"success,omitempty" json:"success,omitempty"`
	Failure     string    `bson:"failure,omitempty" json:"failure,omitempty"`
	ExpiresAt   time.Time `bson:"expiresAt" json:"expiresAt"`
}

// SignedIn reports whether a user is attached to the session.
func (s *Session) SignedIn() bool { return s.CurrentUser != "" }

func (s *Session) SignIn(username string) { s.CurrentUser = username }

func (s *Session) SignOut() { s.CurrentUser = "" }

func (s *Session) FlashSuccess(msg string) { s.Success = msg }

func (s *Session) FlashFailure(msg string) { s.Failure = msg }

// PopFlash returns and clears both flash messages.
func (s *Session) PopFlash() (success, failure string) {
	success, failure = s.Success, s.Failure
	s.Success, s.Failure = "", ""
	return success, failure
}
