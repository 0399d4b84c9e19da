package badattr

//destructure:derive Destructure
type Widget struct {
	Name  string `destructure:"hide"`
	Count int    `destructure:"skip=yes"`
}

//destructure:derive Destructure
type Secret struct {
	token  string
	Digest string `destructure:"skip"`
}
