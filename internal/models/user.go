package models

// User is the locally stored identity record. Credentials live with the
// upstream sign-in provider.
type User struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	FarcasterAddress *string `json:"farcasterAddress,omitempty"`
	WalletAddress    *string `json:"walletAddress,omitempty"`
}
