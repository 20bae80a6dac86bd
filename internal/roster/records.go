package roster

// RosterRecord is one enrolled student from the registrar's roster. The
// NetID and email are lowercased at ingestion; the roster is the
// authoritative source for section, and carries no names.
type RosterRecord struct {
	NetID   string
	Email   string
	Section string
}

// AssessmentRecord is one student's row from the homework/exam source,
// keyed by the same NetID convention as the roster. It is the source of
// student names. Earned and Max hold points by item name ("Homework 3",
// "Exam 1"); a missing entry reads as zero earned.
type AssessmentRecord struct {
	NetID     string
	Email     string
	LastName  string
	FirstName string
	Earned    map[string]float64
	Max       map[string]float64
}

// QuizSource is the grades from a single quiz file: earned points by
// lowercased email. Each quiz arrives in its own file with no NetID column,
// so email is the only join key available.
type QuizSource struct {
	Quiz   string // display name, e.g. "Quiz 3"
	Grades map[string]float64
}

// Student is the unified per-student record after reconciliation. Quiz maps
// quiz name to earned points; quizzes a student never took are simply absent
// and read as zero.
type Student struct {
	NetID     string
	Email     string
	Section   string
	LastName  string
	FirstName string
	Earned    map[string]float64
	Max       map[string]float64
	Quiz      map[string]float64
}
