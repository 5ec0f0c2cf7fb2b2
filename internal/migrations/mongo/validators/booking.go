package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"reference",
			"user_id",
			"flight_id",
			"passengers",
			"seats",
			"base_price",
			"price_paid",
			"status",
			"booking_date",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"reference": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"flight_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"passengers": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "string",
				},
			},

			"seats": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  9,
			},

			"base_price": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"price_paid": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"surged": bson.M{
				"bsonType": "bool",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"cancelled",
				},
			},

			// Legacy imports carry string or epoch booking dates, readers
			// normalize on the way out.
			"booking_date": bson.M{
				"bsonType": []string{"date", "string", "long", "int", "double", "object", "timestamp"},
			},
		},
	},
}
