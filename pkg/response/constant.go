package response

const MessageSuccess = "Success"
