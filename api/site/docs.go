// Package site holds the OpenAPI document for the site service.
package site

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Derivity AI",
            "url": "https://github.com/AkshatMishra0/Derivity-ai"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "description": "Checks an email and password and opens a session. The session token is returned in an HttpOnly cookie.\nFive consecutive wrong passwords lock the account for 30 minutes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "status, message, user", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "400": {"description": "Missing credentials or malformed email", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "423": {"description": "Account locked", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/signup": {
            "post": {
                "description": "Creates an account from a full name, email and password. A unique handle is derived from the email.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign up",
                "parameters": [
                    {
                        "description": "Registration",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.SignupRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "status, message, user", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "409": {"description": "Email or username already taken", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "status, message", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/auth-status": {
            "get": {
                "description": "Returns authenticated=false and a null user when there is no live session.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Session status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.AuthStatusResponse"}}
                }
            }
        },
        "/api/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "status, message, user, profile", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/profile/update": {
            "post": {
                "description": "Only the fields present in the body are changed. Changing the email clears its verified flag; an empty phone removes it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Update profile",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.ProfileUpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "status, message, user", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "409": {"description": "Email already taken", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/profile/security-events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Recent account activity",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum number of events (default 20, max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "status, message, events", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Site"],
                "summary": "Contact form",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.ContactRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/api/ai-chat": {
            "post": {
                "description": "The assistant is not launched yet; every message gets the same informational reply.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Site"],
                "summary": "Assistant chat",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "status, message, response", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "400": {"description": "Invalid data format", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe returning uptime and version. Always 200 while the process is serving.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe checking the database connection and the session signing key.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/http.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.Envelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "error"},
                "message": {"type": "string", "example": "Invalid data format"}
            }
        },
        "http.UserView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "01JTB1T7Q8X3Y2K5M9N0P4R6S8"},
                "handle": {"type": "string", "example": "jane"},
                "email": {"type": "string", "example": "jane@example.com"},
                "firstName": {"type": "string", "example": "Jane"},
                "lastName": {"type": "string", "example": "Doe"},
                "fullName": {"type": "string", "example": "Jane Doe"},
                "newsletter": {"type": "boolean"}
            }
        },
        "http.AuthStatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/http.UserView"}
            }
        },
        "http.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "jane@example.com"},
                "password": {"type": "string", "example": "Abcdefg1"}
            }
        },
        "http.SignupRequest": {
            "type": "object",
            "properties": {
                "fullName": {"type": "string", "example": "Jane Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "password": {"type": "string", "example": "Abcdefg1"},
                "newsletter": {"type": "boolean"}
            }
        },
        "http.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "newsletter": {"type": "boolean"},
                "phone": {"type": "string"}
            }
        },
        "http.ContactRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Jane Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "message": {"type": "string", "example": "Hello!"}
            }
        },
        "http.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "What can you do?"}
            }
        },
        "http.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "ok"},
                "signer": {"type": "string", "example": "ok"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "uptime": {"type": "string", "example": "1h2m3s"},
                "version": {"type": "string", "example": "dev"},
                "checks": {"$ref": "#/definitions/http.HealthChecks"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Derivity AI Site API",
	Description:      "Account, session and contact endpoints behind the Derivity AI website.\n\nSessions are carried in an HttpOnly cookie holding an EdDSA-signed token.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
