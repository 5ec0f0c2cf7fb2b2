package validators

import "go.mongodb.org/mongo-driver/bson"

var WalletValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"balance",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"balance": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
