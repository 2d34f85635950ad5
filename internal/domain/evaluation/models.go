package evaluation

import "time"

type Regime string

type Period string

// Record is one submitted evaluation with the evaluated employee's department
// names already resolved.
type Record struct {
	ID                  string    `json:"id,omitempty"`
	EmployeeID          string    `json:"employeeId"`
	EmployeeName        string    `json:"employeeName"`
	EvaluatorID         string    `json:"evaluatorId"`
	Date                time.Time `json:"date"`
	FinalScore          float64   `json:"finalScore"`
	EmployeeDepartments []string  `json:"employeeDepartments"`
	PositionName        string    `json:"positionName,omitempty"`
}

type Classification struct {
	IsQuarterBased  bool `json:"isQuarterBased"`
	IsSemesterBased bool `json:"isSemesterBased"`
}

// Buckets holds every record twice: once under its semester and once under
// its quarter.
type Buckets struct {
	S1 []Record `json:"S1"`
	S2 []Record `json:"S2"`
	Q1 []Record `json:"Q1"`
	Q2 []Record `json:"Q2"`
	Q3 []Record `json:"Q3"`
	Q4 []Record `json:"Q4"`
}

type EmployeeTotalScore struct {
	EmployeeID      string   `json:"employeeId"`
	EmployeeName    string   `json:"employeeName"`
	Departments     []string `json:"departments"`
	S1              *float64 `json:"s1,omitempty"`
	S2              *float64 `json:"s2,omitempty"`
	Q1              *float64 `json:"q1,omitempty"`
	Q2              *float64 `json:"q2,omitempty"`
	Q3              *float64 `json:"q3,omitempty"`
	Q4              *float64 `json:"q4,omitempty"`
	EvaluationCount int      `json:"evaluationCount"`
	IsQuarterBased  bool     `json:"isQuarterBased"`
	IsSemesterBased bool     `json:"isSemesterBased"`
	TotalScore      *float64 `json:"totalScore,omitempty"`
}

type EligibleEmployee struct {
	EmployeeID      string   `json:"employeeId"`
	EmployeeName    string   `json:"employeeName"`
	Departments     []string `json:"departments"`
	PositionName    string   `json:"positionName,omitempty"`
	AverageScore    float64  `json:"averageScore"`
	EvaluationCount int      `json:"evaluationCount"`
	IsAssistant     bool     `json:"isAssistant"`
}

type Eligibility struct {
	Eligible    []EligibleEmployee `json:"eligible"`
	NotEligible []string           `json:"notEligible"`
}

type PeriodBucket struct {
	Period  Period   `json:"period"`
	Records []Record `json:"records"`
}

type HistoryView struct {
	Regime  Regime         `json:"regime"`
	Periods []PeriodBucket `json:"periods"`
}

type TotalsReport struct {
	Year     int                  `json:"year"`
	Years    []int                `json:"years"`
	Semester []EmployeeTotalScore `json:"semester"`
	Quarter  []EmployeeTotalScore `json:"quarter"`
}

// Submission is the payload accepted when an evaluator files a new evaluation.
type Submission struct {
	EmployeeID  string    `json:"employeeId"`
	EvaluatorID string    `json:"evaluatorId"`
	Date        time.Time `json:"date"`
	FinalScore  float64   `json:"finalScore"`
}
