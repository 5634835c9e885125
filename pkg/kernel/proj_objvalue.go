package kernel

type JobTitle string

type JobDescription string

type Email string

func (e Email) String() string { return string(e) }

type Phone string

// BucketURL is the public URL of an uploaded object
type BucketURL string

func (u BucketURL) String() string { return string(u) }
func (u BucketURL) IsEmpty() bool  { return string(u) == "" }
