package skeleton

// CompressionLevel is the rendering assigned to a file in the packed
// output.
type CompressionLevel int

const (
	// LevelFull preserves the file verbatim.
	LevelFull CompressionLevel = iota
	// LevelSkeleton keeps signatures only.
	LevelSkeleton
	// LevelDrop excludes the file from output entirely.
	LevelDrop
)

func (l CompressionLevel) String() string {
	switch l {
	case LevelFull:
		return "full"
	case LevelSkeleton:
		return "skeleton"
	default:
		return "drop"
	}
}

// FileAllocation carries the token costs of one file and the
// compression level the allocator assigned to it.
type FileAllocation struct {
	Path           string
	Tier           FileTier
	FullTokens     int
	SkeletonTokens int
	Level          CompressionLevel
}

// NewFileAllocation builds an allocation starting at Skeleton level.
func NewFileAllocation(path string, tier FileTier, fullTokens, skeletonTokens int) FileAllocation {
	return FileAllocation{
		Path:           path,
		Tier:           tier,
		FullTokens:     fullTokens,
		SkeletonTokens: skeletonTokens,
		Level:          LevelSkeleton,
	}
}

// CurrentTokens returns the token cost at the assigned level.
func (f *FileAllocation) CurrentTokens() int {
	switch f.Level {
	case LevelFull:
		return f.FullTokens
	case LevelSkeleton:
		return f.SkeletonTokens
	default:
		return 0
	}
}

// UpgradeCost is the extra tokens needed to promote Skeleton to Full.
// Files already at Full or Drop cost nothing to leave where they are.
func (f *FileAllocation) UpgradeCost() int {
	if f.Level == LevelSkeleton {
		return f.FullTokens - f.SkeletonTokens
	}
	return 0
}

// AdaptiveAllocator assigns compression levels under a token budget
// using a 3-pass strategy: baseline everything at Skeleton, then
// either upgrade high-value tiers to Full while budget remains, or
// drop low-value tiers until the total fits.
type AdaptiveAllocator struct {
	budget int
}

// NewAdaptiveAllocator creates an allocator for the given token budget.
func NewAdaptiveAllocator(budget int) *AdaptiveAllocator {
	return &AdaptiveAllocator{budget: budget}
}

// Allocate assigns a level to every file. Input order is preserved and
// a file is never both upgraded and dropped in the same call: exactly
// one of the two adjustment passes runs, depending on whether the
// all-skeleton baseline fits the budget.
func (a *AdaptiveAllocator) Allocate(files []FileAllocation) []FileAllocation {
	if len(files) == 0 {
		return files
	}

	for i := range files {
		files[i].Level = LevelSkeleton
	}

	baseline := 0
	for i := range files {
		baseline += files[i].CurrentTokens()
	}

	if baseline <= a.budget {
		upgradePass(a.budget, files)
	} else {
		downgradePass(a.budget, files)
	}

	return files
}

var upgradeOrder = []FileTier{TierCore, TierConfig, TierTests, TierOther}

func upgradePass(budget int, files []FileAllocation) {
	current := 0
	for i := range files {
		current += files[i].CurrentTokens()
	}
	remaining := budget - current
	if remaining < 0 {
		remaining = 0
	}

	for _, tier := range upgradeOrder {
		for i := range files {
			if files[i].Tier != tier || files[i].Level != LevelSkeleton {
				continue
			}
			cost := files[i].UpgradeCost()
			if cost <= remaining {
				files[i].Level = LevelFull
				remaining -= cost
			}
		}
	}
}

var dropOrder = []FileTier{TierOther, TierTests, TierConfig, TierCore}

func downgradePass(budget int, files []FileAllocation) {
	for _, tier := range dropOrder {
		for i := range files {
			if files[i].Tier != tier || files[i].Level == LevelDrop {
				continue
			}
			files[i].Level = LevelDrop

			current := 0
			for j := range files {
				current += files[j].CurrentTokens()
			}
			if current <= budget {
				return
			}
		}
	}
}
