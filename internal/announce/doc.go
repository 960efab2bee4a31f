// Package announce publishes and discovers rffetap annotation streams
// over mDNS. A serving instance registers a _rffetap._tcp service so
// viewers on the same network can find the stream without knowing the
// host address.
package announce
