package lazydroid

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazydroid/internal/console"
	"github.com/icarus-itcs/lazydroid/internal/preflight"
	"github.com/icarus-itcs/lazydroid/internal/project"
	"github.com/icarus-itcs/lazydroid/internal/sdk"
	"github.com/icarus-itcs/lazydroid/internal/session"
	"github.com/icarus-itcs/lazydroid/internal/settings"
)

var (
	headerColor = color.New(color.FgGreen, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the project and its build output",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Name\t%s\n", p.Name())
		fmt.Fprintf(w, "Path\t%s\n", p.Path())
		fmt.Fprintf(w, "Build mode\t%s\n", sess.BuildMode())
		fmt.Fprintf(w, "APK\t%s\n", p.APKFilename(sess.BuildMode()))
		if sess.BuildMode() != project.DefaultMode {
			fmt.Fprintf(w, "Debug APK\t%s\n", dimColor.Sprint(p.DebugAPK()))
		}
		switch dir, ok, err := p.SDKPath(); {
		case err != nil:
			fmt.Fprintf(w, "SDK\t%s\n", warnColor.Sprint(err))
		case !ok:
			fmt.Fprintf(w, "SDK\t%s\n", warnColor.Sprint("sdk.dir not set in local.properties"))
		default:
			fmt.Fprintf(w, "SDK\t%s\n", dir)
		}
		if path := sess.Settings().Path(); path != "" {
			fmt.Fprintf(w, "Settings\t%s\n", dimColor.Sprint(path))
		}
		return w.Flush()
	},
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List installed build targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		if projectDir != "" {
			if _, err := openProject(); err != nil {
				return err
			}
		}
		targets, err := sess.ListTargets(ctx)
		if err != nil {
			return err
		}
		preferred := sess.Settings().GetString(settings.DefaultBuildTarget)
		for _, t := range targets {
			marker := " "
			if t.ID() == preferred {
				marker = okColor.Sprint("*")
			}
			fmt.Printf("%s %s\t%s\n", marker, t.ID(), t.Label())
		}
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List attached devices and emulators",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		if projectDir != "" {
			if _, err := openProject(); err != nil {
				return err
			}
		}
		devices, err := sess.ListDevices(ctx)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			return sdk.ErrNoDevices
		}
		for _, d := range devices {
			fmt.Printf("%s\t%s\n", d.Serial, d.Kind())
		}
		return nil
	},
}

var newFlags sdk.CreateProjectRequest

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a project with the android tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		r := sess.NewProjectRequest(args[0])
		if newFlags.Target != "" {
			r.Target = newFlags.Target
		}
		if newFlags.Path != "" {
			r.Path = newFlags.Path
		}
		if newFlags.Activity != "" {
			r.Activity = newFlags.Activity
		}
		if newFlags.Package != "" {
			r.Package = newFlags.Package
		}
		c, err := sess.CreateProjectCommand(r)
		if err != nil {
			return err
		}
		if err := stream(ctx, c); err != nil {
			return err
		}
		okColor.Printf("Created %s in %s\n", r.Name, r.Path)
		return nil
	},
}

var buildMode string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		if _, err := openProject(); err != nil {
			return err
		}
		c, err := sess.BuildCommand(buildMode)
		if err != nil {
			return err
		}
		return stream(ctx, c)
	},
}

var serial string

// pickSerial resolves --serial or the single attached device
func pickSerial(ctx context.Context) (string, error) {
	if serial != "" {
		return serial, nil
	}
	devices, err := sess.ListDevices(ctx)
	if err != nil {
		return "", err
	}
	d, err := session.PickDevice(devices, "")
	if err != nil {
		return "", err
	}
	return d.Serial, nil
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the built APK on a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		if _, err := openProject(); err != nil {
			return err
		}
		s, err := pickSerial(ctx)
		if err != nil {
			return err
		}
		c, err := sess.InstallCommand(s)
		if err != nil {
			return err
		}
		return stream(ctx, c)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the project and install it on a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		if _, err := openProject(); err != nil {
			return err
		}
		s, err := pickSerial(ctx)
		if err != nil {
			return err
		}
		plan, err := sess.RunPlan(s)
		if err != nil {
			return err
		}
		for _, c := range plan {
			if err := stream(ctx, c); err != nil {
				return err
			}
		}
		okColor.Printf("Installed on %s\n", s)
		return nil
	},
}

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Open the SDK manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		return console.Launch(sess.Toolchain().SDKManagerCommand())
	},
}

var avdCmd = &cobra.Command{
	Use:   "avd",
	Short: "Open the AVD manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		return console.Launch(sess.Toolchain().AVDManagerCommand())
	},
}

var preflightRoot string

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check that the SDK tools are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectDir != "" {
			if _, err := openProject(); err != nil {
				return err
			}
		}
		st := sess.Settings()
		root := preflightRoot
		if root == "" {
			root = st.GetString(settings.DefaultProjectPath)
		}
		r := preflight.Run(preflight.Options{
			AndroidCommand: st.GetString(settings.AndroidCommand),
			AntCommand:     st.GetString(settings.AntCommand),
			ADBCommand:     sess.Toolchain().ADBPath(),
			ProjectRoot:    root,
		})

		for _, c := range r.Checks {
			switch c.Status {
			case preflight.StatusOK:
				fmt.Printf("%s %-18s %s %s\n", okColor.Sprint("✓"), c.Name, c.Message, dimColor.Sprint(c.Path))
			case preflight.StatusWarning:
				fmt.Printf("%s %-18s %s\n", warnColor.Sprint("!"), c.Name, warnColor.Sprint(c.Message))
			case preflight.StatusError:
				fmt.Printf("%s %-18s %s\n", errColor.Sprint("✗"), c.Name, errColor.Sprint(c.Message))
			}
		}
		if len(r.Discoveries) > 0 {
			fmt.Println()
			headerColor.Println("Projects")
			for _, f := range r.Discoveries {
				fmt.Printf("  %s\t%s\n", f.Name, dimColor.Sprint(f.Path))
			}
		}
		fmt.Println()
		if r.HasErrors {
			return fmt.Errorf("preflight: %s", r.Summary())
		}
		okColor.Println(r.Summary())
		return nil
	},
}

// stream runs c with its output on stdout
func stream(ctx context.Context, c sdk.Command) error {
	headerColor.Printf("$ %s\n", c.String())
	return console.Run(ctx, c, os.Stdout)
}

func init() {
	newCmd.Flags().StringVar(&newFlags.Target, "target", "", "build target id (default: from settings)")
	newCmd.Flags().StringVar(&newFlags.Path, "path", "", "project directory (default: project folder/NAME)")
	newCmd.Flags().StringVar(&newFlags.Activity, "activity", "", "main activity (default: NAMEActivity)")
	newCmd.Flags().StringVar(&newFlags.Package, "package", "", "package name (default: namespace.name)")

	buildCmd.Flags().StringVarP(&buildMode, "mode", "m", "", "build mode (default: from settings)")

	for _, c := range []*cobra.Command{installCmd, runCmd} {
		c.Flags().StringVarP(&serial, "serial", "s", "", "device serial (default: the only attached device)")
	}

	preflightCmd.Flags().StringVar(&preflightRoot, "root", "", "directory searched for projects (default: project folder)")

	rootCmd.AddCommand(infoCmd, targetsCmd, devicesCmd, newCmd, buildCmd, installCmd, runCmd, sdkCmd, avdCmd, preflightCmd)
}
