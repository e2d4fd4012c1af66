package winamp

// Window message identifiers
const (
	wmCommand  = 0x0111
	wmCopyData = 0x004A
	wmUser     = 0x0400

	// WM_WA_IPC carries general IPC commands to the main window
	wmWaIPC = wmUser
	// WM_ML_IPC carries media library commands to the library window
	wmMlIPC = wmWaIPC + 0x1000
)

// Main window IPC commands (lParam of WM_WA_IPC)
const (
	ipcEnqueueFile              = 100
	ipcDelete                   = 101
	ipcIsPlaying                = 104
	ipcGetOutputTime            = 105
	ipcJumpToTime               = 106
	ipcSetPlaylistPos           = 121
	ipcSetVolume                = 122
	ipcGetListLength            = 124
	ipcGetListPos               = 125
	ipcGetInfo                  = 126
	ipcGetPlaylistFile          = 211
	ipcGetPlaylistTitle         = 212
	ipcGetShuffle               = 250
	ipcGetRepeat                = 251
	ipcSetShuffle               = 252
	ipcSetRepeat                = 253
	ipcGetWnd                   = 260
	ipcGetExtendedFileInfo      = 290
	ipcIsFullscreen             = 630
	ipcSetRating                = 639
	ipcGetRating                = 640
	ipcVidCmd                   = 1002
	ipcGetPlayingTitle          = 3034
	ipcRegisterWinampIPCMessage = 65536
)

// Playlist editor IPC commands (wParam of WM_WA_IPC to the playlist window)
const (
	ipcPEDeleteIndex = 104
)

// IPC_GETWND selectors
const (
	getWndEqualizer = 0
	getWndPlaylist  = 1
	getWndBrowser   = 2
	getWndVideo     = 3
)

// Media library commands (lParam of WM_ML_IPC)
const (
	mlIPCDBRunQuery         = 0x0700
	mlIPCDBRunQuerySearch   = 0x0701
	mlIPCDBFreeQueryResults = 0x0705

	mlIPCTreeItemGetChild = 0x121
	mlIPCTreeItemGetNext  = 0x122
	mlIPCTreeItemGetInfo  = 0x124
	mlIPCTreeItemGetRoot  = 0x129

	mltiText = 1
)

// WM_COMMAND identifiers
const (
	buttonPrevious = 40044
	buttonPlay     = 40045
	buttonPause    = 40046
	buttonStop     = 40047
	buttonNext     = 40048

	// sort playlist by path and filename
	idPESortPath = 40211
)

// IPC_GETOUTPUTTIME modes
const (
	outputTimePosition = 0
	outputTimeLength   = 1
)

// volumeQuery asks IPC_SETVOLUME for the current volume
const volumeQuery = -666

// IPC_VIDCMD commands
const vidCmdFullscreen = 0

// libraryWindowMessage is the registered IPC message name that yields the
// media library window. Undocumented but stable across releases.
const libraryWindowMessage = "LibraryGetWnd"

// InfoMode selects what IPC_GETINFO reports about the playing track.
type InfoMode int

const (
	InfoSampleRate   InfoMode = 0
	InfoBitrate      InfoMode = 1
	InfoChannels     InfoMode = 2
	InfoVideo        InfoMode = 3
	InfoSampleRateHz InfoMode = 4
)

// maxPath mirrors MAX_PATH, the bound used for target strings.
const maxPath = 260

// DefaultWindow is the class name Winamp registers for its main window.
const DefaultWindow = "Winamp v1.x"
