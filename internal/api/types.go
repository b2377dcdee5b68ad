package api

// EventAttendance is a single event a customer attended.
type EventAttendance struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Date      string `json:"date"`
}

// CoursePurchase is a single course a customer purchased.
type CoursePurchase struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Date       string `json:"date"`
}

// CustomerSummary is the list-view shape of a customer.
type CustomerSummary struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	EventCount  int    `json:"event_count"`
	CourseCount int    `json:"course_count"`
}

// Customer is the detail-view shape of a customer.
type Customer struct {
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Events      []EventAttendance `json:"events"`
	Courses     []CoursePurchase  `json:"courses"`
	EventCount  int               `json:"event_count"`
	CourseCount int               `json:"course_count"`
}

// Attendee is a customer on an event's attendee list or a course's
// buyer list.
type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// Event is an event with its attendees.
type Event struct {
	EventID       string     `json:"event_id"`
	EventName     string     `json:"event_name"`
	AttendeeCount int        `json:"attendee_count"`
	Attendees     []Attendee `json:"attendees"`
}

// Course is a course with its buyers.
type Course struct {
	CourseID   string     `json:"course_id"`
	CourseName string     `json:"course_name"`
	BuyerCount int        `json:"buyer_count"`
	Buyers     []Attendee `json:"buyers"`
}

// ConversionStats aggregates event-to-course conversion.
type ConversionStats struct {
	TotalEventAttendees int     `json:"total_event_attendees"`
	TotalCourseBuyers   int     `json:"total_course_buyers"`
	ConvertedCustomers  int     `json:"converted_customers"`
	ConversionRate      float64 `json:"conversion_rate"`
}

// TopCourse is a course ranked by conversions from a given event.
type TopCourse struct {
	CourseName string `json:"course_name"`
	Count      int    `json:"count"`
}

// EventCourseCorrelation relates one event to the courses its attendees
// went on to buy.
type EventCourseCorrelation struct {
	EventID           string      `json:"event_id"`
	EventName         string      `json:"event_name"`
	EventAttendees    int         `json:"event_attendees"`
	ConvertedToCourse int         `json:"converted_to_course"`
	ConversionRate    float64     `json:"conversion_rate"`
	TopCourses        []TopCourse `json:"top_courses"`
}

// Analytics is the aggregate dashboard payload.
type Analytics struct {
	TotalCustomers    int                      `json:"total_customers"`
	TotalEvents       int                      `json:"total_events"`
	TotalCourses      int                      `json:"total_courses"`
	ConversionStats   ConversionStats          `json:"conversion_stats"`
	EventCorrelations []EventCourseCorrelation `json:"event_correlations"`
}
