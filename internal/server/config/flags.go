package config

import (
	"flag"
	"io"
	"time"

	"github.com/sooldama/sooldama/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   HTTP bind address
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-l string   log level (debug, info, warn, error)
//	-k string   session attribute holding the signed-in email
//	-n string   session cookie name
//	-s string   session cookie secret
//	-t int      session lifetime, minutes
//	-b int      bcrypt cost
//	-u string   S3 root user
//	-p string   S3 root password
//	-o string   S3 bucket with product images
//	-r string   S3 region
//	-e string   S3 base endpoint
//	-i int      presigned image URL lifetime, minutes
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-g", "-d", "-l", "-k", "-n", "-s", "-t", "-b", "-u", "-p", "-o", "-r", "-e", "-i",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AuthSessionKey, "k", config.AuthSessionKey, "session attribute for the signed-in email")
	fs.StringVar(&config.SessionCookieName, "n", config.SessionCookieName, "session cookie name")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session cookie secret")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "o", config.S3Bucket, "S3 bucket with product images")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	imageURLTTL := fs.Int("i", int(config.ImageURLTTL.Minutes()), "presigned image URL lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Minute flags only apply when given, so sub-minute JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		case "i":
			config.ImageURLTTL = time.Duration(*imageURLTTL) * time.Minute
		}
	})
	return nil
}
