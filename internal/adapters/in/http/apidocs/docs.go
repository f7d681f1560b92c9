// Package apidocs registers the Swagger 2.0 description of the HTTP API
// with swag, so echo-swagger can serve it under /swagger/.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/shipments": {
            "post": {
                "summary": "Create a shipment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShipmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ShipmentEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Tracking id conflict", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Owner or enterprise does not exist", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/shipments/mine": {
            "get": {
                "summary": "List the caller's shipments",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentListEnvelope"}}
                }
            }
        },
        "/shipments/track/{trackingId}": {
            "get": {
                "summary": "Track a shipment owned or shipped by the caller",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "trackingId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/shipments/{shipmentId}/location": {
            "patch": {
                "summary": "Overwrite the last known location",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "shipmentId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateLocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/shipments/{shipmentId}/progress": {
            "patch": {
                "summary": "Append a progress entry",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "shipmentId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppendProgressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/shipments/{shipmentId}/status": {
            "patch": {
                "summary": "Change the shipment status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "shipmentId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Concurrent modification", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/enterprises/{enterpriseId}/shipments": {
            "get": {
                "summary": "List an enterprise's shipments",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "enterpriseId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ShipmentListEnvelope"}},
                    "403": {"description": "Not an operator of the enterprise", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "success": {"type": "boolean"},
                "errorKind": {"type": "string", "enum": ["OwnerNotFound", "EnterpriseNotFound", "NotFound", "Conflict", "InvalidTransition", "InvalidInput", "Internal"]},
                "message": {"type": "string"}
            }
        },
        "ShipmentEnvelope": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/Shipment"}
            }
        },
        "ShipmentListEnvelope": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/Shipment"}}
            }
        },
        "CreateShipmentRequest": {
            "type": "object",
            "required": ["userId", "enterpriseId", "weight", "deliveryDate", "deliveryTimeRange"],
            "properties": {
                "userId": {"type": "string", "format": "uuid"},
                "enterpriseId": {"type": "string", "format": "uuid"},
                "weight": {"type": "string"},
                "service": {"type": "string", "default": "NovaShip"},
                "category": {"type": "string", "default": "package"},
                "deliveryDate": {"type": "string"},
                "deliveryTimeRange": {"type": "string"}
            }
        },
        "UpdateLocationRequest": {
            "type": "object",
            "required": ["longitude", "latitude"],
            "properties": {
                "longitude": {"type": "number", "minimum": -180, "maximum": 180},
                "latitude": {"type": "number", "minimum": -90, "maximum": 90}
            }
        },
        "AppendProgressRequest": {
            "type": "object",
            "required": ["status", "location"],
            "properties": {
                "status": {"type": "string", "enum": ["packing", "picked_up", "in_transit"]},
                "location": {"type": "string"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["shipped", "delayed", "delivered"]}
            }
        },
        "Location": {
            "type": "object",
            "properties": {
                "longitude": {"type": "number"},
                "latitude": {"type": "number"}
            }
        },
        "ProgressEntry": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "location": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "Enterprise": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "logoUrl": {"type": "string"}
            }
        },
        "Shipment": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "trackingId": {"type": "string"},
                "userId": {"type": "string", "format": "uuid"},
                "enterpriseId": {"type": "string", "format": "uuid"},
                "weight": {"type": "string"},
                "service": {"type": "string"},
                "category": {"type": "string"},
                "status": {"type": "string"},
                "location": {"$ref": "#/definitions/Location"},
                "progress": {"type": "array", "items": {"$ref": "#/definitions/ProgressEntry"}},
                "deliveryDate": {"type": "string"},
                "deliveryTimeRange": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "enterprise": {"$ref": "#/definitions/Enterprise"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shipment Tracking API",
	Description:      "Create shipments, record their progress and track them by tracking id.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
