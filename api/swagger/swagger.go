package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Young Minds Availability API",
        "description": "Mentor availability, booking window and scheduling service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Mentor schedule settings and weekly patterns"},
        {"name": "Patterns", "description": "Per-day weekly pattern editing"},
        {"name": "Exceptions", "description": "Date-range overrides of the weekly pattern"},
        {"name": "Bookings", "description": "Session booking and slot listing"},
        {"name": "Templates", "description": "Named schedule presets"},
        {"name": "Exports", "description": "Schedule exports with signed downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/api/v1/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get schedule settings and weekly patterns",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Replace schedule settings and weekly patterns",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/availability/settings": {
            "patch": {
                "tags": ["Availability"],
                "summary": "Partially update schedule settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/availability/effective": {
            "get": {
                "tags": ["Availability"],
                "summary": "Effective time blocks for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "ISO date (YYYY-MM-DD)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date"}
                }
            }
        },
        "/api/v1/availability/slots": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Bookable slots for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "mentorId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/patterns/{day}": {
            "get": {
                "tags": ["Patterns"],
                "summary": "Get one day's pattern",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true, "description": "0=Sunday .. 6=Saturday"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/patterns/{day}/enabled": {
            "patch": {
                "tags": ["Patterns"],
                "summary": "Enable or disable a day",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"isEnabled": {"type": "boolean"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/patterns/{day}/blocks": {
            "post": {
                "tags": ["Patterns"],
                "summary": "Add a time block to a day",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimeBlock"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid or overlapping block"}
                }
            }
        },
        "/api/v1/availability/patterns/{day}/blocks/{index}": {
            "put": {
                "tags": ["Patterns"],
                "summary": "Edit a time block",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true},
                    {"name": "index", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimeBlock"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Patterns"],
                "summary": "Remove a time block",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true},
                    {"name": "index", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/patterns/{day}/copy": {
            "post": {
                "tags": ["Patterns"],
                "summary": "Copy a day's pattern to other days",
                "parameters": [
                    {"name": "day", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"targetDays": {"type": "array", "items": {"type": "integer"}}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/patterns/bulk": {
            "post": {
                "tags": ["Patterns"],
                "summary": "Apply one pattern to several days",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/exceptions": {
            "get": {
                "tags": ["Exceptions"],
                "summary": "List exceptions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Exceptions"],
                "summary": "Create an exception",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlaps an existing exception"}
                }
            },
            "delete": {
                "tags": ["Exceptions"],
                "summary": "Delete exceptions by id",
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/availability/exceptions/quick-add": {
            "post": {
                "tags": ["Exceptions"],
                "summary": "Create a preset full-day exception range",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Request a session booking",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken or outside the booking window"}
                }
            }
        },
        "/api/v1/bookings/{id}/confirm": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Confirm a pending booking",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/bookings/{id}/cancel": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Cancel a booking",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List saved templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Capture the current schedule as a template",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/templates/{id}/apply": {
            "post": {
                "tags": ["Templates"],
                "summary": "Apply a template to the schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/templates/{id}": {
            "delete": {
                "tags": ["Templates"],
                "summary": "Delete a template",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/availability/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the weekly schedule",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability/export/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export with a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "TimeBlock": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "17:00"},
                "type": {"type": "string", "enum": ["AVAILABLE", "BLOCKED", "BREAK", "BUFFER"]},
                "maxConcurrentBookings": {"type": "integer"}
            }
        },
        "SaveScheduleRequest": {
            "type": "object",
            "properties": {
                "settings": {"type": "object"},
                "weeklyPatterns": {"type": "array", "items": {"type": "object"}}
            }
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string"},
                "defaultSessionDurationMinutes": {"type": "integer"},
                "bufferBetweenSessionsMinutes": {"type": "integer"},
                "minAdvanceBookingHours": {"type": "integer"},
                "maxAdvanceBookingDays": {"type": "integer"},
                "allowInstantBooking": {"type": "boolean"},
                "requireConfirmation": {"type": "boolean"},
                "isActive": {"type": "boolean"}
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
                "pagination": {"type": "object"},
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
