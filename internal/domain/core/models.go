package core

import "time"

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Regime    string    `json:"regime"`
	CreatedAt time.Time `json:"createdAt"`
}

type Position struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsAssistant bool      `json:"isAssistant"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Employee struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	EmployeeNumber  string    `json:"employeeNumber"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	PositionID      string    `json:"positionId"`
	PositionName    string    `json:"positionName"`
	DepartmentIDs   []string  `json:"departmentIds"`
	DepartmentNames []string  `json:"departmentNames"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
