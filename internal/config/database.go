package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB database handle
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection and ensures the indexes
// used by the check history exist.
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureChecksIndexes(ctx, MongoDB.Collection(AppConfig.ChecksCollection)); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// DisconnectMongoDB closes the MongoDB client, if any.
func DisconnectMongoDB(ctx context.Context) {
	if MongoDB == nil {
		return
	}
	if err := MongoDB.Client().Disconnect(ctx); err != nil {
		logging.Logger.Error("failed to disconnect from MongoDB", zap.Error(err))
	}
}

// InitRedis initializes the Redis connection. A failed ping is logged but
// not fatal: the rate limiter falls back to local buckets without Redis.
func InitRedis() {
	target := AppConfig.RedisURI
	if AppConfig.RedisClusterEnabled {
		Redis = redisclient.NewClusterClient(redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        AppConfig.RedisClusterAddrs,
			Password:     AppConfig.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}))
		target = strings.Join(AppConfig.RedisClusterAddrs, ",")
	} else {
		Redis = redisclient.NewClient(redis.NewClient(&redis.Options{
			Addr:         AppConfig.RedisURI,
			Password:     AppConfig.RedisPassword,
			DB:           AppConfig.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", target),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", target),
		zap.Bool("cluster", AppConfig.RedisClusterEnabled))
}

// EnsureChecksIndexes creates the indexes backing subject counts and the
// time-windowed summary.
func EnsureChecksIndexes(ctx context.Context, collection *mongo.Collection) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "subject_hash", Value: 1}},
			Options: options.Index().SetName("kind_1_subject_hash_1"),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("timestamp_-1"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection.Name(), err)
	}
	return nil
}

// maskMongoURI masks credentials in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	scheme := "mongodb://"
	if i := strings.Index(uri, "://"); i >= 0 {
		scheme = uri[:i+3]
	}
	return scheme + "****:****@" + uri[at+1:]
}
