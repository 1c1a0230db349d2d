package entity

import (
	"fmt"
	"time"
)

type LoginStep string

const (
	StepDisclaimer LoginStep = "disclaimer"
	StepPhone      LoginStep = "phone"
	StepVerify     LoginStep = "verify"
	StepProfile    LoginStep = "profile"
	StepComplete   LoginStep = "complete"
)

// next lists the steps reachable from each step. Verify may skip straight to
// complete when the user already has a profile.
var next = map[LoginStep][]LoginStep{
	StepDisclaimer: {StepPhone},
	StepPhone:      {StepVerify},
	StepVerify:     {StepProfile, StepComplete},
	StepProfile:    {StepComplete},
}

// PhoneLogin tracks one pass through the phone sign-in flow.
type PhoneLogin struct {
	ID              string    `json:"id" firestore:"id"`
	Step            LoginStep `json:"step" firestore:"step"`
	PhoneNumber     string    `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	SessionInfo     string    `json:"-" firestore:"sessionInfo,omitempty"`
	UID             string    `json:"uid,omitempty" firestore:"uid,omitempty"`
	Attempts        int       `json:"attempts" firestore:"attempts"`
	AcceptedTermsAt time.Time `json:"accepted_terms_at" firestore:"acceptedTermsAt"`
	ExpiresAt       time.Time `json:"expires_at" firestore:"expiresAt"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (l *PhoneLogin) Expired(now time.Time) bool {
	return !l.ExpiresAt.IsZero() && now.After(l.ExpiresAt)
}

// Advance moves the flow to step, rejecting anything but the next step.
func (l *PhoneLogin) Advance(step LoginStep) error {
	for _, allowed := range next[l.Step] {
		if allowed == step {
			l.Step = step
			return nil
		}
	}
	return fmt.Errorf("cannot move login flow from %s to %s", l.Step, step)
}

// PhoneCredential is what the identity provider hands back after a
// successful SMS code check.
type PhoneCredential struct {
	UID         string
	IDToken     string
	PhoneNumber string
	IsNewUser   bool
}
