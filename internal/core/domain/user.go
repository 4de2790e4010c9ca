package domain

// User is a directory record. Username is the collection key and is not
// repeated inside the persisted record.
type User struct {
	Username     string `json:"-"`
	PasswordHash string `json:"password_hash,omitempty"`
	// LegacyPassword holds a plaintext credential from records written before
	// hashing was introduced. It is cleared on the first successful login.
	LegacyPassword string `json:"password,omitempty"`
	Role           Role   `json:"role"`
	Tags           Set    `json:"tags"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Tags = u.Tags.Clone()
	return &c
}

// Users is the persisted shape of the user collection.
type Users map[string]*User
