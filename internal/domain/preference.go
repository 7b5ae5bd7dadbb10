package domain

import (
	"fmt"
	"strings"
	"time"
)

// Allowed code sets for dogs and preferences.
var (
	GenderCodes = []string{"m", "f", "u"}
	SizeCodes   = []string{"s", "m", "l", "xl", "u"}
	AgeCodes    = []string{string(AgeBaby), string(AgeYoung), string(AgeAdult), string(AgeSenior)}
)

// Preference is a user's discovery filter. Each field is a comma-joined set
// of codes; an empty field matches no dog.
type Preference struct {
	ID        int64     `json:"id"     gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"-"      gorm:"not null;uniqueIndex:ux_preference_user"`
	Gender    string    `json:"gender" gorm:"type:varchar(15);not null;default:''"`
	Age       string    `json:"age"    gorm:"type:varchar(15);not null;default:''"`
	Size      string    `json:"size"   gorm:"type:varchar(15);not null;default:''"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Preference.
func (Preference) TableName() string { return "preferences" }

// Genders returns the accepted gender codes.
func (p Preference) Genders() []string { return SplitCodes(p.Gender) }

// Sizes returns the accepted size codes.
func (p Preference) Sizes() []string { return SplitCodes(p.Size) }

// AgeStages returns the accepted age stage codes.
func (p Preference) AgeStages() []AgeStage {
	codes := SplitCodes(p.Age)
	out := make([]AgeStage, 0, len(codes))
	for _, c := range codes {
		out = append(out, AgeStage(c))
	}
	return out
}

// AgeMonths returns the ages (in months) accepted by the preference.
func (p Preference) AgeMonths() []int { return AgeMonthRange(p.AgeStages()) }

// MatchesNothing reports whether any of the three sets is empty.
func (p Preference) MatchesNothing() bool {
	return len(p.Genders()) == 0 || len(p.Sizes()) == 0 || len(p.AgeStages()) == 0
}

// Matches reports whether d satisfies every set of the preference.
func (p Preference) Matches(d Dog) bool {
	if !contains(p.Genders(), d.Gender) || !contains(p.Sizes(), d.Size) {
		return false
	}
	for _, st := range p.AgeStages() {
		if r, ok := AgeStages[st]; ok && r.Contains(d.Age) {
			return true
		}
	}
	return false
}

// SplitCodes splits a comma-joined code set, lowercasing and dropping blanks
// and repeats while keeping first-seen order.
func SplitCodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		c := foldCode(p)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// NormalizeCodes validates every code of the comma-joined set s against
// allowed and returns the canonical comma-joined form.
func NormalizeCodes(field, s string, allowed []string) (string, error) {
	codes := SplitCodes(s)
	for _, c := range codes {
		if !contains(allowed, c) {
			return "", fmt.Errorf("%s: %q is not one of %s", field, c, strings.Join(allowed, ", "))
		}
	}
	return strings.Join(codes, ","), nil
}

// ValidCode reports whether code (case-insensitive) belongs to allowed.
func ValidCode(code string, allowed []string) bool {
	return contains(allowed, foldCode(code))
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
