package dto

import "course_api/internal/model"

// CourseRequest is the body of create, update and import calls. A client
// supplied "id" is not bound.
type CourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CourseRequest) Course() model.Course {
	return model.Course{Name: r.Name, Description: r.Description}
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
