package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore state snapshots to S3",
	Long: `Copy state snapshots to an S3-compatible bucket and back.

Configure backup.bucket (and optionally backup.region, backup.endpoint,
backup.key_prefix and backup.profile) in the config file or environment.`,
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the latest local snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackup(cmd, func(svc *backup.Service) error {
			key, err := svc.Push(cmd.Context())
			if errors.Is(err, backup.ErrNoSnapshot) {
				fmt.Println("Nothing to back up yet.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s\n", key)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackup(cmd, func(svc *backup.Service) error {
			objs, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(objs) == 0 {
				fmt.Println("No backups found.")
				return nil
			}
			out := newReport("Modified", "Bytes", "Key").alignRight(1)
			for _, o := range objs {
				out.add(o.LastModified.Local().Format(timeLayout), o.Size, o.Key)
			}
			fmt.Println(out)
			return nil
		})
	},
}

var backupPullCmd = &cobra.Command{
	Use:   "pull [key]",
	Short: "Restore a backup (the newest when no key is given)",
	Long: `Download a backup and save it as the newest local snapshot.

Running apps and servers pick it up on their next refresh.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		}
		return withBackup(cmd, func(svc *backup.Service) error {
			snap, err := svc.Pull(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Printf("Restored state version %d (%d accounts)\n", snap.Data.Version, len(snap.Data.Users))
			return nil
		})
	},
}

// withBackup opens the store and the configured bucket and runs fn.
func withBackup(cmd *cobra.Command, fn func(*backup.Service) error) error {
	cfg, s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	svc, err := backup.NewFromConfig(cmd.Context(), cfg.Backup, s.SnapshotRepo())
	if errors.Is(err, backup.ErrNoBucket) {
		return errors.New("backup.bucket is not configured")
	}
	if err != nil {
		return err
	}
	return fn(svc)
}

func init() {
	backupCmd.AddCommand(backupPushCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupPullCmd)
}
