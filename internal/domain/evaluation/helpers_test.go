package evaluation

import "time"

func rec(employeeID string, year int, month time.Month, score float64, departments ...string) Record {
	return Record{
		EmployeeID:          employeeID,
		EmployeeName:        "Employee " + employeeID,
		Date:                time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		FinalScore:          score,
		EmployeeDepartments: departments,
	}
}
