// Package models defines client-side data types: the session record, signup
// profile, chat messages, and the profile enumerations attached to outgoing
// personalization requests.
package models

import "time"

// Hardware is the platform the reader works on.
type Hardware string

const (
	HardwareJetson      Hardware = "Jetson"
	HardwareLaptop      Hardware = "Laptop"
	HardwareRaspberryPi Hardware = "Raspberry Pi"
	HardwareArduino     Hardware = "Arduino"
	HardwareOther       Hardware = "Other"
)

// Experience is the reader's self-reported level.
type Experience string

const (
	ExperienceBeginner     Experience = "Beginner"
	ExperienceIntermediate Experience = "Intermediate"
	ExperienceAdvanced     Experience = "Advanced"
)

// Language is the reader's preferred content language.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageUrdu    Language = "Urdu"
)

// Background categorizes the reader for local personalization rules.
type Background string

const (
	BackgroundSoftware Background = "software-focused"
	BackgroundHardware Background = "hardware-focused"
	BackgroundMixed    Background = "mixed"
	BackgroundBeginner Background = "beginner"
)

func (h Hardware) Valid() bool {
	switch h {
	case HardwareJetson, HardwareLaptop, HardwareRaspberryPi, HardwareArduino, HardwareOther:
		return true
	}
	return false
}

func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageUrdu:
		return true
	}
	return false
}

func (b Background) Valid() bool {
	switch b {
	case BackgroundSoftware, BackgroundHardware, BackgroundMixed, BackgroundBeginner:
		return true
	}
	return false
}

// User is the authenticated session record held client-side and persisted
// under the user_data storage key. It deliberately has no password field:
// the persisted form of the session record never contains one.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Hardware   Hardware   `json:"hardware,omitempty"`
	Experience Experience `json:"experience,omitempty"`
	Language   Language   `json:"language,omitempty"`
	Background Background `json:"background,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SignupProfile carries the signup form fields, including the transient
// password pair. It exists only for the duration of the signup call and is
// never persisted.
type SignupProfile struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Hardware        Hardware
	Experience      Experience
	Language        Language
	Background      Background
}
