package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Elite Hub Portal API",
        "description": "Academy marketing and student portal backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Signup, login and session info"},
        {"name": "Settings", "description": "Branding and instructor profile"},
        {"name": "Contents", "description": "Student learning contents"},
        {"name": "Resources", "description": "Downloadable resource files"},
        {"name": "Videos", "description": "YouTube lecture videos"},
        {"name": "QnA", "description": "Question board and admin replies"},
        {"name": "Users", "description": "Signup approval management"},
        {"name": "Analytics", "description": "Usage counters and activity log"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Request a student account",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created in pending state", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Name and phone already registered", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Student login with name and phone",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token issued, pending accounts included", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Unknown credentials", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/auth/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login with shared password",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Admin token issued", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Wrong password", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current account info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Account info", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "End the session client side",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Logged out"}
                }
            }
        },
        "/api/v1/settings/branding": {
            "get": {
                "tags": ["Settings"],
                "summary": "Public branding settings",
                "responses": {
                    "200": {"description": "Branding, defaults when never saved", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/settings/instructor": {
            "get": {
                "tags": ["Settings"],
                "summary": "Public instructor profile",
                "responses": {
                    "200": {"description": "Instructor profile", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/contents": {
            "get": {
                "tags": ["Contents"],
                "summary": "List learning contents",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Contents, newest first", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Account has no access", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/resources": {
            "get": {
                "tags": ["Resources"],
                "summary": "List resource files",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Resources, newest first", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/resources/{id}/download": {
            "get": {
                "tags": ["Resources"],
                "summary": "Issue a signed download URL",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Short lived download URL", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/downloads/{token}": {
            "get": {
                "tags": ["Resources"],
                "summary": "Redeem a signed download URL",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Expired or tampered token", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/videos": {
            "get": {
                "tags": ["Videos"],
                "summary": "List lecture videos",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Videos in display order", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/qna": {
            "get": {
                "tags": ["QnA"],
                "summary": "List question posts with replies",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Posts, newest first", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["QnA"],
                "summary": "Create a question post",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Post created", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/analytics/track": {
            "post": {
                "tags": ["Analytics"],
                "summary": "Record a usage event",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TrackRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted, recorded only for approved accounts", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/settings/branding": {
            "put": {
                "tags": ["Settings"],
                "summary": "Save branding settings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BrandingSettings"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/settings/instructor": {
            "put": {
                "tags": ["Settings"],
                "summary": "Save instructor profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorProfile"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/settings/slogan": {
            "post": {
                "tags": ["Settings"],
                "summary": "Generate a marketing slogan",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Generated or fallback slogan", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/contents": {
            "post": {
                "tags": ["Contents"],
                "summary": "Create a content item",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/contents/{id}": {
            "delete": {
                "tags": ["Contents"],
                "summary": "Delete a content item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/resources": {
            "post": {
                "tags": ["Resources"],
                "summary": "Upload a resource file",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "name", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Uploaded", "schema": {"$ref": "#/definitions/Envelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/resources/{id}": {
            "delete": {
                "tags": ["Resources"],
                "summary": "Delete a resource file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/admin/videos": {
            "post": {
                "tags": ["Videos"],
                "summary": "Register a YouTube video",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Unrecognized YouTube URL", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/videos/{id}": {
            "delete": {
                "tags": ["Videos"],
                "summary": "Delete a video",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/admin/qna/{id}/replies": {
            "post": {
                "tags": ["QnA"],
                "summary": "Append a reply to a post",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Reply appended", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Post not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List signups by status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved"]}
                ],
                "responses": {
                    "200": {"description": "Users", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/users/{id}/approve": {
            "post": {
                "tags": ["Users"],
                "summary": "Approve a pending signup",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Approved"},
                    "409": {"description": "Not in pending state", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Reject and remove a signup",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/api/v1/admin/analytics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Counter snapshot with recent activity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Counters, activity log and system metrics", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/analytics/export": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Download the analytics report",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered report"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "required": ["name", "phone", "password", "confirm_password"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "academy": {"type": "string"},
                "password": {"type": "string"},
                "confirm_password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["name", "phone"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "BrandingSettings": {
            "type": "object",
            "required": ["brandName"],
            "properties": {
                "brandName": {"type": "string"},
                "heroImageUrl": {"type": "string"},
                "instructorSlogan": {"type": "string"},
                "copyrightText": {"type": "string"}
            }
        },
        "InstructorProfile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string"},
                "profileImageUrl": {"type": "string"},
                "bio": {"type": "string"},
                "achievements": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreatePostRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "TrackRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "enum": ["visit", "video_view", "download", "qna_post"]},
                "detail": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Envelope": {
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
