package similarity

import "strings"

// Level is the ordered experience level of a posting
type Level int

const (
	LevelUnknown Level = iota - 1
	LevelEntry
	LevelJunior
	LevelMid
	LevelSenior
	LevelLead
	LevelExecutive
)

var levelNames = [...]string{"entry", "junior", "mid", "senior", "lead", "executive"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// experienceMatrix[target][candidate]
var experienceMatrix = [len(levelNames)][len(levelNames)]float64{
	LevelEntry:     {1.0, 0.8, 0.4, 0.1, 0.05, 0.0},
	LevelJunior:    {0.7, 1.0, 0.8, 0.3, 0.1, 0.05},
	LevelMid:       {0.3, 0.7, 1.0, 0.8, 0.4, 0.1},
	LevelSenior:    {0.1, 0.3, 0.7, 1.0, 0.8, 0.4},
	LevelLead:      {0.05, 0.1, 0.4, 0.8, 1.0, 0.7},
	LevelExecutive: {0.0, 0.05, 0.1, 0.4, 0.7, 1.0},
}

// JobType is the employment arrangement of a posting
type JobType int

const (
	JobTypeUnknown JobType = iota - 1
	JobTypeFullTime
	JobTypePartTime
	JobTypeContract
	JobTypeInternship
	JobTypeFreelance
)

var jobTypeNames = [...]string{"full-time", "part-time", "contract", "internship", "freelance"}

func (t JobType) String() string {
	if t < 0 || int(t) >= len(jobTypeNames) {
		return "unknown"
	}
	return jobTypeNames[t]
}

var jobTypeMatrix = [len(jobTypeNames)][len(jobTypeNames)]float64{
	JobTypeFullTime:   {1.0, 0.5, 0.6, 0.2, 0.4},
	JobTypePartTime:   {0.5, 1.0, 0.5, 0.4, 0.7},
	JobTypeContract:   {0.6, 0.5, 1.0, 0.2, 0.8},
	JobTypeInternship: {0.2, 0.4, 0.2, 1.0, 0.2},
	JobTypeFreelance:  {0.4, 0.7, 0.8, 0.2, 1.0},
}

// WorkMode is where the work happens
type WorkMode int

const (
	WorkModeUnknown WorkMode = iota - 1
	WorkModeOnSite
	WorkModeRemote
	WorkModeHybrid
)

var workModeNames = [...]string{"on-site", "remote", "hybrid"}

func (m WorkMode) String() string {
	if m < 0 || int(m) >= len(workModeNames) {
		return "unknown"
	}
	return workModeNames[m]
}

var workModeMatrix = [len(workModeNames)][len(workModeNames)]float64{
	WorkModeOnSite: {1.0, 0.2, 0.7},
	WorkModeRemote: {0.2, 1.0, 0.8},
	WorkModeHybrid: {0.7, 0.8, 1.0},
}

// canonicalLabel lowercases and maps '_' and spaces to '-'
func canonicalLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// ParseLevel maps free text to a Level. ok is false for unrecognized labels.
func ParseLevel(s string) (Level, bool) {
	switch canonicalLabel(s) {
	case "entry", "entry-level", "graduate":
		return LevelEntry, true
	case "junior", "jr":
		return LevelJunior, true
	case "mid", "mid-level", "middle", "intermediate":
		return LevelMid, true
	case "senior", "sr":
		return LevelSenior, true
	case "lead", "principal", "staff":
		return LevelLead, true
	case "executive", "exec", "director":
		return LevelExecutive, true
	}
	return LevelUnknown, false
}

// ParseJobType maps free text to a JobType
func ParseJobType(s string) (JobType, bool) {
	switch canonicalLabel(s) {
	case "full-time", "fulltime", "permanent":
		return JobTypeFullTime, true
	case "part-time", "parttime":
		return JobTypePartTime, true
	case "contract", "contractor", "temporary":
		return JobTypeContract, true
	case "internship", "intern":
		return JobTypeInternship, true
	case "freelance", "freelancer":
		return JobTypeFreelance, true
	}
	return JobTypeUnknown, false
}

// ParseWorkMode maps free text to a WorkMode
func ParseWorkMode(s string) (WorkMode, bool) {
	switch canonicalLabel(s) {
	case "on-site", "onsite", "in-office", "office":
		return WorkModeOnSite, true
	case "remote", "fully-remote":
		return WorkModeRemote, true
	case "hybrid":
		return WorkModeHybrid, true
	}
	return WorkModeUnknown, false
}
