// internal/domain/models/signup.go
package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used when no site name is configured.
const DefaultSiteName = "Unconfirmed"

// Signup is a pending registration awaiting email confirmation.
//
// A signup is created when someone registers on the network and is
// removed from the pending set the moment it is activated (Active
// flips to true and Activated is stamped). The admin list only ever
// shows rows with Active == false.
type Signup struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Domain        string             `bson:"domain" json:"domain"`
	Path          string             `bson:"path" json:"path"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	UserLogin     string             `bson:"user_login" json:"user_login"`
	UserEmail     string             `bson:"user_email" json:"user_email"`
	Registered    time.Time          `bson:"registered" json:"registered"`
	Activated     *time.Time         `bson:"activated,omitempty" json:"activated,omitempty"`
	Active        bool               `bson:"active" json:"active"`
	ActivationKey string             `bson:"activation_key" json:"activation_key"`

	// Meta carries whatever key/value pairs were captured at
	// registration time. It is opaque to the store; use
	// NormalizedMeta for display.
	Meta map[string]string `bson:"meta,omitempty" json:"meta,omitempty"`

	// Resend bookkeeping for the activation email.
	ResendCount int        `bson:"resend_count,omitempty" json:"resend_count,omitempty"`
	LastSentAt  *time.Time `bson:"last_sent_at,omitempty" json:"last_sent_at,omitempty"`
}

// SignupMeta is the read-side view of a signup's metadata: the keys we
// know about are lifted onto typed fields, everything else stays in
// Extra. Unknown keys are never merged onto the Signup itself.
type SignupMeta struct {
	Public bool              // "public": site listed in directories
	LangID int               // "lang_id": language selected at registration
	Extra  map[string]string // remaining keys, verbatim
}

// NormalizedMeta maps the fixed, known metadata key-set onto typed
// fields and collects the rest into Extra.
func (s *Signup) NormalizedMeta() SignupMeta {
	m := SignupMeta{}
	if len(s.Meta) == 0 {
		return m
	}
	for k, v := range s.Meta {
		switch k {
		case "public":
			m.Public = v == "1" || v == "true"
		case "lang_id":
			if n, err := strconv.Atoi(v); err == nil {
				m.LangID = n
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[k] = v
		}
	}
	return m
}
