package broken

//destructure:derive Destructure
type Broken struct {
	Name string
