package validators

import "go.mongodb.org/mongo-driver/bson"

var FlightValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"airline",
			"flight_number",
			"origin",
			"destination",
			"departure_time",
			"arrival_time",
			"price",
			"seats_total",
			"seats_available",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"airline": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
			},

			"flight_number": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{2,3}[0-9]{1,4}$",
			},

			"origin": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"destination": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"departure_time": bson.M{
				"bsonType": "date",
			},

			"arrival_time": bson.M{
				"bsonType": "date",
			},

			"price": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"seats_total": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  900,
			},

			"seats_available": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"scheduled",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
