package domain

// DayCount is the number of registrations on one day of the month
type DayCount struct {
	Day   int   `json:"day"`   // Day of month, 1-based
	Count int64 `json:"count"` // Registrations that day
}

// AdminStats summarizes the catalog and this month's registrations
type AdminStats struct {
	TotalCategories int64      `json:"totalCategories"` // Categories in the catalog
	TotalVocab      int64      `json:"totalVocab"`      // Vocabulary entries in the catalog
	TotalSavedWords int64      `json:"totalSavedWords"` // Saved words across all users
	CurrentMonth    string     `json:"currentMonth"`    // Month covered by UserStats, YYYY-MM
	UserStats       []DayCount `json:"userStats"`       // Registrations per day, ascending, days with none omitted
}
