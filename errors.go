package fatreader

import "errors"

// These errors may occur while decoding an image.
// They are usually wrapped by a checkpoint, so use errors.Is to check for them.
var (
	ErrTruncatedImage  = errors.New("image is shorter than the required header or region")
	ErrInvalidGeometry = errors.New("invalid filesystem geometry")
	ErrDecode          = errors.New("invalid byte sequence in name")

	ErrRootInClusterChain = errors.New("root directory is stored in a cluster chain")
	ErrNoPartition        = errors.New("partition does not exist")
)

// These errors may occur while processing a file of the read only Fs.
var (
	ErrContentUnsupported = errors.New("reading file contents is not supported")
	ErrSeekFile           = errors.New("could not seek inside of the file")
	ErrReadDir            = errors.New("could not read the directory")
)
