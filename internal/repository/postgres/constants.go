package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound  = "user not found"
	errGrantNotFound = "grant not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"

	errFailedCreateGrantFmt  = "failed to create grant: %w"
	errFailedGetGrantFmt     = "failed to get grant: %w"
	errFailedListGrantsFmt   = "failed to list grants: %w"
	errFailedScanGrantFmt    = "failed to scan grant: %w"
	errFailedConfirmGrantFmt = "failed to confirm grant upload: %w"
	errFailedActivateFmt     = "failed to activate grant: %w"
	errFailedMarkExpiredFmt  = "failed to mark grant expired: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedCreateGrant          = func(err error) error { return fmt.Errorf(errFailedCreateGrantFmt, err) }
	errFailedGetGrant             = func(err error) error { return fmt.Errorf(errFailedGetGrantFmt, err) }
	errFailedListGrants           = func(err error) error { return fmt.Errorf(errFailedListGrantsFmt, err) }
	errFailedScanGrant            = func(err error) error { return fmt.Errorf(errFailedScanGrantFmt, err) }
	errFailedConfirmGrant         = func(err error) error { return fmt.Errorf(errFailedConfirmGrantFmt, err) }
	errFailedActivate             = func(err error) error { return fmt.Errorf(errFailedActivateFmt, err) }
	errFailedMarkExpired          = func(err error) error { return fmt.Errorf(errFailedMarkExpiredFmt, err) }
)
