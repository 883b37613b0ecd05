package model

// Career is one recommended career path produced by the advisor model.
type Career struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SalaryRange    string   `json:"salaryRange"`
	GrowthRate     string   `json:"growthRate"`
	RequiredSkills []string `json:"requiredSkills"`
	MissingSkills  []string `json:"missingSkills"`
	Industries     []string `json:"industries"`
	Education      string   `json:"education"`
	Experience     string   `json:"experience"`
	JobOutlook     string   `json:"jobOutlook"`
}
