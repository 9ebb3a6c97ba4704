package core

const (
	ThemeLight  ThemeMode = "LIGHT"
	ThemeDark   ThemeMode = "DARK"
	ThemeSystem ThemeMode = "SYSTEM"
)

type ThemeMode string

// Preferences is the single per-user settings record.
//
// DarkMode is a legacy boolean predating Theme. Stored records are
// normalized once at load via NormalizePreferences; writes keep the two
// in sync so older clients keep working.
type Preferences struct {
	OnboardingCompleted bool
	Theme               ThemeMode
	DarkMode            bool
	Currency            string
}

type PreferencesPatch struct {
	OnboardingCompleted *bool
	Theme               *ThemeMode
	DarkMode            *bool
	Currency            *string
}

func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// DefaultPreferences is the record created at sign-up.
func DefaultPreferences() Preferences {
	return Preferences{
		OnboardingCompleted: false,
		Theme:               ThemeDark,
		DarkMode:            true,
		Currency:            "INR",
	}
}

// NormalizePreferences migrates a stored record into the current shape.
// A record with no Theme derives it from the legacy DarkMode flag; a
// record with a Theme gets DarkMode re-derived so the two never diverge.
func NormalizePreferences(p Preferences) Preferences {
	if !p.Theme.IsValid() {
		if p.DarkMode {
			p.Theme = ThemeDark
		} else {
			p.Theme = ThemeLight
		}
	}
	p.DarkMode = p.Theme != ThemeLight
	if p.Currency == "" {
		p.Currency = "INR"
	}
	return p
}

// ApplyPatch merges a partial update, keeping Theme and DarkMode in sync
// regardless of which one the caller set.
func (p Preferences) ApplyPatch(patch PreferencesPatch) Preferences {
	if patch.OnboardingCompleted != nil {
		p.OnboardingCompleted = *patch.OnboardingCompleted
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
		p.DarkMode = *patch.Theme != ThemeLight
	} else if patch.DarkMode != nil {
		p.DarkMode = *patch.DarkMode
		if *patch.DarkMode {
			p.Theme = ThemeDark
		} else {
			p.Theme = ThemeLight
		}
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	return p
}
