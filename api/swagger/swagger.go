package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CCIS Admin API",
        "description": "School administration API for Cedar Crest International School",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster, attendance and grades"},
        {"name": "Teachers", "description": "Faculty roster and attendance"},
        {"name": "Grades", "description": "Grade entry and term tables"},
        {"name": "Events", "description": "School calendar"},
        {"name": "Notifications", "description": "Guardian communication hub"},
        {"name": "Reports", "description": "Terminal report cards"},
        {"name": "Settings", "description": "Report settings and branding"},
        {"name": "Exports", "description": "Spreadsheet and CSV downloads"},
        {"name": "Dashboard", "description": "Landing-page summary"},
        {"name": "Guardian", "description": "Read-only guardian portal"}
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "gradeLevel", "in": "query", "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students/bulk-delete": {
            "post": {
                "tags": ["Students"],
                "summary": "Delete a set of students",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkDeleteRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students/attendance": {
            "put": {
                "tags": ["Students"],
                "summary": "Mark attendance for a set of students",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkAttendanceRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students/{id}/attendance": {
            "put": {
                "tags": ["Students"],
                "summary": "Mark one student's attendance",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students/{id}/grades": {
            "put": {
                "tags": ["Grades"],
                "summary": "Record one score",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report card projection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "type": "integer"},
                    {"name": "comment", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report.pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Printable report card PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "type": "integer"},
                    {"name": "comment", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{id}/report/draft-comment": {
            "post": {
                "tags": ["Reports"],
                "summary": "Draft a principal's comment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Register teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Teachers"],
                "summary": "Update teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterTeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/teachers/bulk-delete": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Delete a set of teachers",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkDeleteRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/teachers/{id}/attendance": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Mark one teacher's attendance",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/grades/subjects": {
            "get": {
                "tags": ["Grades"],
                "summary": "List the taught subject catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/table": {
            "get": {
                "tags": ["Grades"],
                "summary": "Grade table for one term",
                "parameters": [
                    {"name": "term", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List calendar events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create calendar event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Replace event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/events/{id}/draft-email": {
            "post": {
                "tags": ["Events"],
                "summary": "Draft a guardian announcement email",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/logs": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List the notification audit log",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/templates": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List communication templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Notifications"],
                "summary": "Replace the template collection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/TemplateRequest"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/send": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Send one guardian message",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/bulk-send": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Send the same message to many guardians",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkSendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings/report": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get report settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace report settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings/logo": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get the school logo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace the school logo",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LogoRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/exports/students.xlsx": {
            "get": {
                "tags": ["Exports"],
                "summary": "Student roster workbook",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/teachers.xlsx": {
            "get": {
                "tags": ["Exports"],
                "summary": "Faculty roster workbook",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/attendance.xlsx": {
            "get": {
                "tags": ["Exports"],
                "summary": "One day's attendance workbook",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/attendance.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "One day's attendance as a printable PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/grades.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "One term's scores as CSV",
                "parameters": [
                    {"name": "term", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/logs.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Notification audit log as CSV",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Admin dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Snapshot save status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/guardian/students/{id}": {
            "get": {
                "tags": ["Guardian"],
                "summary": "Guardian portal view of one ward",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "gradeLevel": {"type": "string"},
                "section": {"type": "string"},
                "avatar": {"type": "string"},
                "guardianName": {"type": "string"},
                "guardianEmail": {"type": "string"},
                "guardianPhone": {"type": "string"},
                "grades": {"type": "array", "items": {"$ref": "#/definitions/Grade"}},
                "attendance": {"type": "object"}
            }
        },
        "Grade": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "score": {"type": "number"},
                "maxScore": {"type": "number"},
                "term": {"type": "integer"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "gradeLevel": {"type": "string"},
                "section": {"type": "string"},
                "avatar": {"type": "string"},
                "guardianName": {"type": "string"},
                "guardianEmail": {"type": "string"},
                "guardianPhone": {"type": "string"}
            },
            "required": ["name", "gradeLevel", "guardianName", "guardianEmail"]
        },
        "RegisterTeacherRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "department": {"type": "string"},
                "email": {"type": "string"},
                "avatar": {"type": "string"}
            },
            "required": ["name", "department", "email"]
        },
        "AttendanceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "status": {"type": "string", "enum": ["PRESENT", "ABSENT", "LATE"]}
            },
            "required": ["status"]
        },
        "BulkAttendanceRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "date": {"type": "string"},
                "status": {"type": "string", "enum": ["PRESENT", "ABSENT", "LATE"]}
            },
            "required": ["ids", "status"]
        },
        "BulkDeleteRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["ids"]
        },
        "UpsertGradeRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "term": {"type": "integer"},
                "score": {"type": "number"}
            },
            "required": ["subject", "term"]
        },
        "EventRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "bg": {"type": "string"}
            },
            "required": ["title", "date", "time"]
        },
        "SendMessageRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "subject": {"type": "string"},
                "body": {"type": "string"},
                "category": {"type": "string", "enum": ["ACADEMIC", "EVENT", "EMERGENCY", "FEE", "GENERAL"]}
            },
            "required": ["studentId", "subject", "body", "category"]
        },
        "BulkSendRequest": {
            "type": "object",
            "properties": {
                "studentIds": {"type": "array", "items": {"type": "string"}},
                "subject": {"type": "string"},
                "body": {"type": "string"},
                "category": {"type": "string", "enum": ["ACADEMIC", "EVENT", "EMERGENCY", "FEE", "GENERAL"]}
            },
            "required": ["studentIds", "subject", "body", "category"]
        },
        "TemplateRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"}
            },
            "required": ["name", "subject", "content", "category"]
        },
        "ReportSettingsRequest": {
            "type": "object",
            "properties": {
                "headOfSchool": {"type": "string"},
                "signature": {"type": "string"},
                "authPrefix": {"type": "string"}
            },
            "required": ["headOfSchool", "authPrefix"]
        },
        "LogoRequest": {
            "type": "object",
            "properties": {
                "logo": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
