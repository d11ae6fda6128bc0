package model

// Course statuses.
const (
	CourseCompleted  = "completed"
	CourseInProgress = "in-progress"
	CourseLocked     = "locked"
)

// Course is one entry of the financial-literacy catalog.
type Course struct {
	ID               string  `bson:"id"               json:"id"`
	Title            string  `bson:"title"            json:"title"`
	Description      string  `bson:"description"      json:"description"`
	Duration         string  `bson:"duration"         json:"duration"`
	Level            string  `bson:"level"            json:"level"`
	Progress         float64 `bson:"progress"         json:"progress"`
	Completed        bool    `bson:"completed"        json:"completed"`
	Modules          int     `bson:"modules"          json:"modules"`
	CompletedModules int     `bson:"completedModules" json:"completedModules"`
	Rating           float64 `bson:"rating"           json:"rating"`
	Students         int     `bson:"students"         json:"students"`
	Thumbnail        string  `bson:"thumbnail"        json:"thumbnail"`
	Status           string  `bson:"status"           json:"status"`
}
