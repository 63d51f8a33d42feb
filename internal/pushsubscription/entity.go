package pushsubscription

import "time"

// Subscription is one browser push endpoint, as handed over by the
// PushManager subscribe call on the client.
type Subscription struct {
	ID        string    `yaml:"id" json:"id"`
	Endpoint  string    `yaml:"endpoint" json:"endpoint"`
	P256DH    string    `yaml:"p256dh" json:"p256dh"`
	Auth      string    `yaml:"auth" json:"auth"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
}
