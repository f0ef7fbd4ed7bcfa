package naturals

const (
	// ProgressInterval is the number of loop iterations between two
	// cancellation checks and progress callbacks in the accumulating
	// strategies. It is a power of two so the check is a mask.
	ProgressInterval = 1 << 16

	// SequenceFlushInterval is the number of numbers written between two
	// cancellation checks in WriteSequence.
	SequenceFlushInterval = 4096

	// GaussName and LoopName are the registry keys of the built-in summers.
	GaussName = "gauss"
	LoopName  = "loop"
)
