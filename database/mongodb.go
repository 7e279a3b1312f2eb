package database

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var DefaultMongoClient *mongo.Client

func init() {
	godotenv.Load()
	mongoClient, err := mongo.Connect(options.Client().
		ApplyURI(os.Getenv("MONGODB_URI")).
		SetBSONOptions(
			&options.BSONOptions{
				ObjectIDAsHexString: true,
			},
		))
	if err != nil {
		log.Warnln("Failed to connect to MongoDB:", err)
	}
	DefaultMongoClient = mongoClient
}
