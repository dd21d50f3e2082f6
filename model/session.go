package model

// RefreshSession is the value stored against an opaque refresh token in the
// session store. It carries just enough to mint a new access token.
type RefreshSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}
