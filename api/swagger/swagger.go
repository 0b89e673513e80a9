package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Ops API",
        "description": "Class scheduling and attendance aggregation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Timetable", "description": "Weekly grid management"},
        {"name": "Teachers", "description": "Teacher directory"},
        {"name": "Attendance", "description": "Marking sheets and batch submission"},
        {"name": "Attendance Summaries", "description": "Aggregated attendance views"},
        {"name": "Views", "description": "Role view resolution"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive an access token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/timetable/{classGroup}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Stored timetable slots for a class",
                "parameters": [
                    {"name": "classGroup", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/timetable/{classGroup}/grid": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Weekly timetable grid for a class",
                "parameters": [
                    {"name": "classGroup", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/timetable": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Upsert a timetable slot",
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Invalid assignment or break period"}
                }
            }
        },
        "/timetable/{classGroup}/{day}/{period}": {
            "delete": {
                "tags": ["Timetable"],
                "summary": "Clear a timetable slot",
                "parameters": [
                    {"name": "classGroup", "in": "path", "type": "string", "required": true},
                    {"name": "day", "in": "path", "type": "string", "required": true},
                    {"name": "period", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers with their taught subjects",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/sheet": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Marking sheet for a class, date and period",
                "parameters": [
                    {"name": "classGroup", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "periodNumber", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/resolve": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Resolve whether the caller owns a grid cell right now",
                "parameters": [
                    {"name": "classGroup", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "periodNumber", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not this teacher's period"},
                    "409": {"description": "Tapped day is not today"}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Submit an attendance batch",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Batch rejected, nothing written"}
                }
            }
        },
        "/attendance/my-history/{studentId}": {
            "get": {
                "tags": ["Attendance Summaries"],
                "summary": "A student's own attendance history",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "viewMode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/student-history-admin/{studentId}": {
            "get": {
                "tags": ["Attendance Summaries"],
                "summary": "Admin view of a student's attendance history",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "viewMode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/teacher-summary": {
            "get": {
                "tags": ["Attendance Summaries"],
                "summary": "Per-class/subject summary scoped to the marking teacher",
                "parameters": [
                    {"name": "classGroup", "in": "query", "type": "string", "required": true},
                    {"name": "subjectName", "in": "query", "type": "string"},
                    {"name": "viewMode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/admin-summary": {
            "get": {
                "tags": ["Attendance Summaries"],
                "summary": "Per-class/subject summary across all teachers",
                "parameters": [
                    {"name": "classGroup", "in": "query", "type": "string", "required": true},
                    {"name": "subjectName", "in": "query", "type": "string"},
                    {"name": "viewMode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance/admin-summary/export": {
            "get": {
                "tags": ["Attendance Summaries"],
                "summary": "Download a per-student class summary as CSV or PDF",
                "parameters": [
                    {"name": "classGroup", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/subjects/{classGroup}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Subjects taught in a class",
                "parameters": [
                    {"name": "classGroup", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/teacher-assignments/{teacherId}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "A teacher's assigned slots",
                "parameters": [
                    {"name": "teacherId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/views/resolve": {
            "post": {
                "tags": ["Views"],
                "summary": "Resolve the attendance view for the caller's role and context",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
