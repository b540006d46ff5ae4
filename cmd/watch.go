package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow new designer registrations",
	Long: `Watch the designer registry and print designers as they are added or removed.

Useful next to 'metadesigner serve' to follow uploads from the web UI.
Changes are debounced (watch_debounce_ms, default 500ms).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print changes, no banner")
}

// RegistryChange lists the designers added and removed between two registry reads
type RegistryChange struct {
	Added   []domain.Designer
	Removed []domain.Designer
}

// Empty reports whether nothing changed
func (c RegistryChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

func diffRegistry(prev, next domain.Registry) RegistryChange {
	var change RegistryChange
	for _, hash := range next.Hashes() {
		if !prev.HasHash(hash) {
			change.Added = append(change.Added, domain.Designer{Hash: hash, Name: next[hash]})
		}
	}
	for _, hash := range prev.Hashes() {
		if !next.HasHash(hash) {
			change.Removed = append(change.Removed, domain.Designer{Hash: hash, Name: prev[hash]})
		}
	}
	return change
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// The registry is replaced by rename, so watch its directory
	registryPath := appWorkspace.RegistryPath()
	if err := watcher.Add(filepath.Dir(registryPath)); err != nil {
		return fmt.Errorf("failed to watch cache directory: %w", err)
	}

	current, err := registryStore.Load(ctx)
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching designer registry..."))
		fmt.Println(ui.FormatMuted("Registry: " + registryPath))
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Designers: %d", current.Count())))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	var debounce <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(registryPath) {
				continue
			}
			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {
				debounce = time.After(debounceDuration)
			}

		case <-debounce:
			debounce = nil
			next, err := registryStore.Load(ctx)
			if err != nil {
				fmt.Println(ui.FormatError(domain.StatusMessage(err)))
				appLogger.Warn("registry reload failed", "error", err)
				continue
			}
			printRegistryChange(diffRegistry(current, next))
			current = next

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watch stopped"))
			}
			return nil
		}
	}
}

func printRegistryChange(change RegistryChange) {
	now := time.Now().Format("15:04:05")
	for _, d := range change.Added {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s added %s (%s)", now, d.Name, d.Hash)))
	}
	for _, d := range change.Removed {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%s removed %s (%s)", now, d.Name, d.Hash)))
	}
}
