package daybook

// Version of the daybook module.
const Version = "0.1.0"
