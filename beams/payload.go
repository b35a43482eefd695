package beams

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInterests is the most interests a single publish may target.
const MaxInterests = 100

// Notification is the visible part of a push message.
type Notification struct {
	Title string `json:"title,omitempty" yaml:"title"`
	Body  string `json:"body,omitempty" yaml:"body"`
}

// FCM is the Firebase Cloud Messaging section of a publish request.
type FCM struct {
	Notification *Notification `json:"notification,omitempty" yaml:"notification"`
	Data         map[string]any `json:"data,omitempty" yaml:"data"`
}

// Payload is the body of a publish-to-interests request.
type Payload struct {
	Interests []string       `json:"interests" yaml:"interests"`
	FCM       *FCM           `json:"fcm,omitempty" yaml:"fcm"`
	APNS      map[string]any `json:"apns,omitempty" yaml:"apns"`
	Web       map[string]any `json:"web,omitempty" yaml:"web"`
}

// DefaultPayload returns the test notification sent when no payload is given.
func DefaultPayload() Payload {
	return Payload{
		Interests: []string{"user_123"},
		FCM: &FCM{
			Notification: &Notification{
				Title: "Test notification",
				Body:  "This is a test sent to interest user_123",
			},
			Data: map[string]any{
				"type":       "test",
				"request_id": 999,
			},
		},
	}
}

// LoadPayload reads a payload from a YAML or JSON file.
func LoadPayload(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to read payload: %w", err)
	}

	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("failed to decode payload %s: %w", path, err)
	}

	return p, nil
}

// Validate checks the payload targets between 1 and MaxInterests interests
// and carries at least one platform section.
func (p Payload) Validate() error {
	if len(p.Interests) == 0 {
		return errors.New("payload must target at least one interest")
	}
	if len(p.Interests) > MaxInterests {
		return fmt.Errorf("payload targets %d interests, at most %d are allowed", len(p.Interests), MaxInterests)
	}
	for _, interest := range p.Interests {
		if interest == "" {
			return errors.New("interest names cannot be empty")
		}
	}
	if p.FCM == nil && p.APNS == nil && p.Web == nil {
		return errors.New("payload needs an fcm, apns or web section")
	}
	return nil
}

// WithNotification returns a copy of p with the FCM notification title and
// body replaced where the arguments are non-empty.
func (p Payload) WithNotification(title, body string) Payload {
	if title == "" && body == "" {
		return p
	}

	fcm := FCM{}
	if p.FCM != nil {
		fcm = *p.FCM
	}
	n := Notification{}
	if fcm.Notification != nil {
		n = *fcm.Notification
	}
	if title != "" {
		n.Title = title
	}
	if body != "" {
		n.Body = body
	}
	fcm.Notification = &n
	p.FCM = &fcm
	return p
}
