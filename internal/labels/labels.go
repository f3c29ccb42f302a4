// Package labels holds the fixed Hebrew display tables for report fields.
package labels

var testNames = map[string]string{
	"Chanukah_Light_Miracle":  "חנוכה - נס האור",
	"Honesty_Truth_Teen":      "אמת ויושר לנוער",
	"Talmud_Wisdom_Stories":   "סיפורי חכמה מהתלמוד",
	"Environment_Jewish_View": "איכות הסביבה - מבט יהודי",
	"Teamwork_Games":          "משחקי עבודת צוות",
	"Purim_Hidden_Revealed":   "פורים - הנסתר והנגלה",
	"Sukkot_Joy_Hospitality":  "סוכות - שמחה והכנסת אורחים",
	"Kibud_Av_VaEm":           "כיבוד אב ואם",
	"Jewish_Heroes_Stories":   "סיפורי גבורה יהודית",
	"Leadership_Challenge":    "אתגר מנהיגות",
}

var activityTypes = map[string]string{
	"religious_holiday": "חג דתי",
	"values_education":  "חינוך ערכי",
	"story_session":     "מפגש סיפורים",
	"discussion":        "דיון",
	"game_based":        "משחקים",
	"combined":          "משולב",
}

var ageGroups = map[string]string{
	"middle": "בינוני (10-13)",
	"teen":   "נוער (14-16)",
}

// TestName returns the display label for a test identifier.
func TestName(id string) string { return lookup(testNames, id) }

// ActivityType returns the display label for an activity category.
func ActivityType(key string) string { return lookup(activityTypes, key) }

// AgeGroup returns the display label for an audience group.
func AgeGroup(key string) string { return lookup(ageGroups, key) }

// lookup falls back to the key itself on a miss.
func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}
