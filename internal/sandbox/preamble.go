package sandbox

// matplotlibPreamble is prepended to every user snippet. It selects the
// non-interactive Agg backend before pyplot is imported and replaces
// plt.show with a wrapper that saves the current figure to plot.png on its
// first call only, then closes it. The original show is never called — the
// child process has no display. The whole block is guarded so snippets
// that never plot still run on hosts without matplotlib.
//
// The `_plot_saved` flag is the capture-once guard: however many figures
// the snippet shows, at most one artifact file is ever written.
const matplotlibPreamble = `import sys
import os
try:
    import matplotlib
    matplotlib.use('Agg')
    import matplotlib.pyplot as plt

    _plot_saved = False

    def _capture_show(*args, **kwargs):
        global _plot_saved
        if not _plot_saved:
            try:
                plt.savefig('plot.png')
                _plot_saved = True
                print('[Plot saved to plot.png]', file=sys.stderr)
            except Exception as e:
                print('Error saving plot: %s' % e, file=sys.stderr)
        plt.close()

    plt.show = _capture_show
except ImportError:
    pass

`

// plotSavedMarker prefixes the preamble's own diagnostic line on stderr.
// Lines with this prefix are stripped from the user-facing error summary
// (the raw stderr still carries them).
const plotSavedMarker = "[Plot saved to"

// Assemble produces the final script: instrumentation first, then the user
// code, as a single concatenation. Pure text assembly — it cannot fail.
func Assemble(userCode string) string {
	return matplotlibPreamble + userCode
}
