/*
Copyright © 2024 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package customresource adapts the AMI lookup service to the CloudFormation
// custom resource protocol.
//
// CloudFormation invokes the function with a cfn.Event whose
// ResourceProperties carry an ImageRequested value. The Handler resolves it
// through an ami.Looker and sends exactly one response to the event's
// presigned ResponseURL:
//
//	SUCCESS  Data: {"Ami": "ami-0123456789abcdef0"}
//	FAILED   Data: {"Error": "No AMI could be found with the specified parameters"}
//
// Delete events always succeed without a lookup so stacks can be torn down
// even when the listing has been withdrawn.
package customresource
