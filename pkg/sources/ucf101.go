package sources

import (
	"errors"
	"fmt"
)

const baseURL = "https://www.crcv.ucf.edu/data/UCF101/"

// Directory names of an extracted UCF101 tree.
const (
	DatasetDir = "UCF-101"
	ListDir    = "ucfTrainTestlist"
	TrainDir   = "train"
	TestDir    = "test"
)

// ErrInvalidFold is returned for fold numbers outside 1..3.
var ErrInvalidFold = errors.New("fold must be 1, 2 or 3")

// UCF101 returns the archives making up the dataset and its official
// recognition splits. The detection-task splits are only included on request.
func UCF101(includeDetection bool) []Archive {
	archives := []Archive{
		{Name: "UCF101.rar", URL: baseURL + "UCF101.rar"},
		{Name: "RecognitionSplits.zip", URL: baseURL + "UCF101TrainTestSplits-RecognitionTask.zip"},
	}
	if includeDetection {
		archives = append(archives, Archive{
			Name: "DetectionSplits.zip",
			URL:  baseURL + "UCF101TrainTestSplits-DetectionTask.zip",
		})
	}
	return archives
}

// Fold selects one of the three official train/test partitions.
type Fold int

// Folds lists every valid fold.
var Folds = []Fold{1, 2, 3}

func ParseFold(n int) (Fold, error) {
	for _, f := range Folds {
		if int(f) == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: got %d", ErrInvalidFold, n)
}

// TrainList is the name of the fold's train manifest inside ListDir.
func (f Fold) TrainList() string {
	return fmt.Sprintf("trainlist%02d.txt", int(f))
}

// TestList is the name of the fold's test manifest inside ListDir.
func (f Fold) TestList() string {
	return fmt.Sprintf("testlist%02d.txt", int(f))
}
